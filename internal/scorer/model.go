package scorer

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"swipepilot/internal/analyzer"
	"swipepilot/internal/domain"
)

// featureNames fixes the order of the numeric profile encoding. Changing
// it invalidates persisted models, so Load cross-checks it.
var featureNames = []string{
	"age", "distance", "bio_length", "photo_count",
	"polarity", "subjectivity", "interest_count", "emoji_count",
	"keyword_count",
}

const (
	trainEpochs       = 500
	trainLearningRate = 0.1
)

// Model is a fitted match-probability classifier: a standard scaler plus
// logistic-regression weights over the fixed feature vector. The zero
// value is not usable; obtain one via Train or Load.
type Model struct {
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
	Mean      []float64 `json:"mean"`
	Std       []float64 `json:"std"`
	TrainedAt time.Time `json:"trained_at"`
}

// featureVector encodes a snapshot and its analysis in featureNames order.
func featureVector(snapshot domain.ProfileSnapshot, analysis domain.AnalysisResult) []float64 {
	return []float64{
		float64(snapshot.Age),
		float64(snapshot.DistanceKm),
		float64(analysis.BioLength),
		float64(analysis.PhotoCount),
		analysis.Sentiment.Polarity,
		analysis.Sentiment.Subjectivity,
		float64(len(analysis.Interests)),
		float64(len(analysis.Emojis)),
		float64(len(analysis.Keywords)),
	}
}

// Probability returns the model's match probability for a raw feature
// vector, in [0,1].
func (m *Model) Probability(features []float64) float64 {
	z := m.Bias
	for i, f := range features {
		if i >= len(m.Weights) {
			break
		}
		z += m.Weights[i] * m.scale(i, f)
	}
	return sigmoid(z)
}

func (m *Model) scale(i int, v float64) float64 {
	if i >= len(m.Mean) || i >= len(m.Std) {
		return v
	}
	std := m.Std[i]
	if std == 0 {
		std = 1
	}
	return (v - m.Mean[i]) / std
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Train fits the scaler and classifier jointly on labeled snapshots
// (label 1 = match occurred). Fitting is plain batch gradient descent;
// the sample sets involved are small.
func Train(an *analyzer.Analyzer, samples []domain.ProfileSnapshot, labels []int) (*Model, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}
	if len(samples) != len(labels) {
		return nil, fmt.Errorf("samples/labels length mismatch: %d vs %d", len(samples), len(labels))
	}
	if an == nil {
		an = analyzer.New(0)
	}

	vectors := make([][]float64, len(samples))
	for i, s := range samples {
		vectors[i] = featureVector(s, an.Analyze(s))
	}

	dim := len(featureNames)
	mean, std := fitScaler(vectors, dim)

	scaled := make([][]float64, len(vectors))
	for i, v := range vectors {
		row := make([]float64, dim)
		for j := 0; j < dim; j++ {
			s := std[j]
			if s == 0 {
				s = 1
			}
			row[j] = (v[j] - mean[j]) / s
		}
		scaled[i] = row
	}

	weights := make([]float64, dim)
	bias := 0.0
	n := float64(len(scaled))

	for epoch := 0; epoch < trainEpochs; epoch++ {
		gradW := make([]float64, dim)
		gradB := 0.0
		for i, row := range scaled {
			z := bias
			for j := 0; j < dim; j++ {
				z += weights[j] * row[j]
			}
			diff := sigmoid(z) - float64(labels[i])
			for j := 0; j < dim; j++ {
				gradW[j] += diff * row[j]
			}
			gradB += diff
		}
		for j := 0; j < dim; j++ {
			weights[j] -= trainLearningRate * gradW[j] / n
		}
		bias -= trainLearningRate * gradB / n
	}

	return &Model{
		Features:  append([]string(nil), featureNames...),
		Weights:   weights,
		Bias:      bias,
		Mean:      mean,
		Std:       std,
		TrainedAt: time.Now().UTC(),
	}, nil
}

func fitScaler(vectors [][]float64, dim int) (mean, std []float64) {
	mean = make([]float64, dim)
	std = make([]float64, dim)
	n := float64(len(vectors))

	for _, v := range vectors {
		for j := 0; j < dim; j++ {
			mean[j] += v[j]
		}
	}
	for j := 0; j < dim; j++ {
		mean[j] /= n
	}

	for _, v := range vectors {
		for j := 0; j < dim; j++ {
			d := v[j] - mean[j]
			std[j] += d * d
		}
	}
	for j := 0; j < dim; j++ {
		std[j] = math.Sqrt(std[j] / n)
	}
	return mean, std
}

// Save writes the fitted model state as JSON.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	return nil
}

// Load reads a previously saved model. Loading one switches a scorer
// built with NewWithModel from rule-based to learned mode.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}

	if len(m.Weights) != len(featureNames) {
		return nil, fmt.Errorf("model has %d weights, want %d", len(m.Weights), len(featureNames))
	}
	for i, name := range m.Features {
		if i < len(featureNames) && name != featureNames[i] {
			return nil, fmt.Errorf("model feature order mismatch at %d: %s", i, name)
		}
	}

	return &m, nil
}
