package adapters

import (
	"github.com/de-tools/umami-atlas/pkg/models/domain"
	"github.com/de-tools/umami-atlas/pkg/models/store"
)

func MapFunnelReportStoreToDomain(report store.FunnelReport) domain.FunnelReport {
	steps := make([]domain.FunnelStepDef, 0, len(report.Parameters.Steps))
	for _, step := range report.Parameters.Steps {
		steps = append(steps, domain.FunnelStepDef{
			Type:  step.Type,
			Value: step.Value,
		})
	}

	return domain.FunnelReport{
		ID:     report.ID,
		Name:   report.Name,
		Steps:  steps,
		Window: report.Parameters.Window,
	}
}

func MapStepDefsDomainToStore(steps []domain.FunnelStepDef) []store.FunnelStep {
	mapped := make([]store.FunnelStep, 0, len(steps))
	for _, step := range steps {
		mapped = append(mapped, store.FunnelStep{
			Type:  step.Type,
			Value: step.Value,
		})
	}
	return mapped
}
