package in

import (
	"context"

	"holystreak/internal/modules/streak/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.StateOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Compute(input dto.ComputeInput) dto.DurationOutput
	Reset(ctx context.Context, input dto.ResetInput) (dto.ResetOutput, error)
}
