package scheduler

import (
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

type ResourceKind uint8

const (
	// KindInteger is a discrete resource with a maximum capacity.
	KindInteger ResourceKind = iota + 1

	// KindCumulativeRate is a continuous resource whose value integrates
	// a baseline rate modulated by active rate-change impacts.
	KindCumulativeRate
)

type Resource struct {
	Name        string
	Description string

	ID string

	// INTEGER resources.
	MaxCapacity float64

	// CUMULATIVE_RATE resources. BaselineRate is units per second and
	// InitialValue holds at EpochStart.
	InitialValue float64
	MinValue     float64
	MaxValue     float64
	BaselineRate float64
	EpochStart   int64

	Kind ResourceKind
}

func (res *Resource) IsValid() error {
	switch res.Kind {
	case KindInteger:
		if res.MaxCapacity < 0 {
			return goerrors.ErrValidation{
				Caller: "IsValid - Resource",
				Issue: goerrors.ErrNegativeInput{
					InputName: "MaxCapacity",
				},
			}
		}

	case KindCumulativeRate:
		if res.MinValue > res.MaxValue {
			return goerrors.ErrValidation{
				Caller: "IsValid - Resource",
				Issue: goerrors.ErrInvalidInput{
					InputName: "MinValue",
				},
			}
		}

		if res.InitialValue < res.MinValue || res.InitialValue > res.MaxValue {
			return goerrors.ErrValidation{
				Caller: "IsValid - Resource",
				Issue: goerrors.ErrInvalidInput{
					InputName: "InitialValue",
				},
			}
		}

	default:
		return goerrors.ErrValidation{
			Caller: "IsValid - Resource",
			Issue: goerrors.ErrInvalidInput{
				InputName: "Kind",
			},
		}
	}

	return nil
}

func (res Resource) String() string {
	if res.Kind == KindInteger {
		return fmt.Sprintf(
			"Resource{ID: %s, Name: %q, Kind: INTEGER, MaxCapacity: %.2f}",

			res.ID,
			res.Name,
			res.MaxCapacity,
		)
	}

	return fmt.Sprintf(
		"Resource{ID: %s, Name: %q, Kind: CUMULATIVE_RATE, Initial: %.2f, Bounds: [%.2f, %.2f], BaselineRate: %f}",

		res.ID,
		res.Name,
		res.InitialValue,
		res.MinValue,
		res.MaxValue,
		res.BaselineRate,
	)
}

type ParamsNewIntegerResource struct {
	Name        string `valid:"required"`
	Description string

	// ID is generated when left empty.
	ID string

	MaxCapacity float64
}

func (params *ParamsNewIntegerResource) IsValid() error {
	if params.MaxCapacity < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewIntegerResource",
			Issue: goerrors.ErrNegativeInput{
				InputName: "MaxCapacity",
			},
		}
	}

	return nil
}

func NewIntegerResource(params *ParamsNewIntegerResource) (*Resource, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewIntegerResource",
				Issue:  errValidation,
			}
	}

	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &Resource{
			Name:        params.Name,
			Description: params.Description,

			ID: ternary(
				len(params.ID) == 0,

				uuid.NewString(),
				params.ID,
			),

			MaxCapacity: params.MaxCapacity,

			Kind: KindInteger,
		},
		nil
}

type ParamsNewCumulativeRateResource struct {
	Name        string `valid:"required"`
	Description string

	// ID is generated when left empty.
	ID string

	InitialValue float64
	MinValue     float64
	MaxValue     float64

	// BaselineRate is units per second, zero when the value only moves
	// under rate-change impacts.
	BaselineRate float64

	// EpochStart anchors InitialValue on the timeline.
	EpochStart int64
}

func (params *ParamsNewCumulativeRateResource) IsValid() error {
	if params.MinValue > params.MaxValue {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewCumulativeRateResource",
			Issue: goerrors.ErrInvalidInput{
				InputName: "MinValue",
			},
		}
	}

	if params.InitialValue < params.MinValue || params.InitialValue > params.MaxValue {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewCumulativeRateResource",
			Issue: goerrors.ErrInvalidInput{
				InputName: "InitialValue",
			},
		}
	}

	return nil
}

func NewCumulativeRateResource(params *ParamsNewCumulativeRateResource) (*Resource, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewCumulativeRateResource",
				Issue:  errValidation,
			}
	}

	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &Resource{
			Name:        params.Name,
			Description: params.Description,

			ID: ternary(
				len(params.ID) == 0,

				uuid.NewString(),
				params.ID,
			),

			InitialValue: params.InitialValue,
			MinValue:     params.MinValue,
			MaxValue:     params.MaxValue,
			BaselineRate: params.BaselineRate,
			EpochStart:   params.EpochStart,

			Kind: KindCumulativeRate,
		},
		nil
}
