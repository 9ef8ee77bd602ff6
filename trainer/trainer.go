// Package trainer defines the boundary to the external classifier trainer.
//
// Training and prediction are independent subsystems: the index never calls
// into a Trainer, they share only the vector value type. Implementations wrap
// whatever optimization backend the deployment uses; this package fixes the
// contract so index consumers can type against it.
package trainer

import (
	"context"

	"github.com/hupe1980/embedix/vector"
)

// Hyperparameters carries backend-specific tuning knobs by name.
type Hyperparameters map[string]float64

// Model is an opaque trained classifier.
type Model interface {
	// PredictLabel returns the predicted label per feature vector.
	PredictLabel(ctx context.Context, features []vector.Vector) ([]string, error)

	// PredictDistribution returns per-class probability mappings per
	// feature vector.
	PredictDistribution(ctx context.Context, features []vector.Vector) ([]map[string]float64, error)

	// Serialize returns an opaque blob Deserialize can restore.
	Serialize() ([]byte, error)
}

// Trainer produces models from labeled feature vectors.
type Trainer interface {
	// Train fits a model. features and labels must have equal length.
	Train(ctx context.Context, features []vector.Vector, labels []string, params Hyperparameters) (Model, error)

	// Deserialize restores a model previously produced by Serialize.
	Deserialize(b []byte) (Model, error)
}
