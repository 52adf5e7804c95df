package prediction

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/smartbin/core/model"
)

// NumericTerm is a standardised numeric feature: coef * (x - mean) / scale.
type NumericTerm struct {
	Feature string  `json:"feature"`
	Mean    float64 `json:"mean"`
	Scale   float64 `json:"scale"`
	Coef    float64 `json:"coef"`
}

// CategoricalTerm is a one-hot encoded feature. Categories absent from the
// map contribute nothing.
type CategoricalTerm struct {
	Feature    string             `json:"feature"`
	Categories map[string]float64 `json:"categories"`
}

// Artifact is the persisted form of a LinearModel.
type Artifact struct {
	Name        string            `json:"name"`
	Target      string            `json:"target"`
	Intercept   float64           `json:"intercept"`
	Numeric     []NumericTerm     `json:"numeric"`
	Categorical []CategoricalTerm `json:"categorical"`
}

// LinearModel evaluates an Artifact against feature vectors.
type LinearModel struct {
	name        string
	intercept   float64
	features    []string
	means       *mat.VecDense
	scales      *mat.VecDense
	coefs       *mat.VecDense
	categorical []CategoricalTerm
}

// LoadModel reads and validates a model artifact from path.
func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	m, err := NewLinearModel(a)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

// NewLinearModel validates a against the feature contract.
func NewLinearModel(a Artifact) (*LinearModel, error) {
	n := len(a.Numeric)
	if n == 0 && len(a.Categorical) == 0 {
		return nil, fmt.Errorf("artifact has no terms")
	}
	m := &LinearModel{name: a.Name, intercept: a.Intercept}
	if n > 0 {
		means := make([]float64, n)
		scales := make([]float64, n)
		coefs := make([]float64, n)
		for i, t := range a.Numeric {
			if !model.IsKnownFeature(t.Feature) || model.IsCategoricalFeature(t.Feature) {
				return nil, fmt.Errorf("unknown numeric feature %q", t.Feature)
			}
			if t.Scale == 0 {
				return nil, fmt.Errorf("feature %q has zero scale", t.Feature)
			}
			m.features = append(m.features, t.Feature)
			means[i], scales[i], coefs[i] = t.Mean, t.Scale, t.Coef
		}
		m.means = mat.NewVecDense(n, means)
		m.scales = mat.NewVecDense(n, scales)
		m.coefs = mat.NewVecDense(n, coefs)
	}
	for _, c := range a.Categorical {
		if !model.IsCategoricalFeature(c.Feature) {
			return nil, fmt.Errorf("unknown categorical feature %q", c.Feature)
		}
		m.categorical = append(m.categorical, c)
	}
	return m, nil
}

// Name returns the artifact name.
func (m *LinearModel) Name() string { return m.name }

// PredictRate returns the raw model output for fv.
func (m *LinearModel) PredictRate(fv model.FeatureVector) (float64, error) {
	out := m.intercept
	if len(m.features) > 0 {
		x := mat.NewVecDense(len(m.features), nil)
		for i, f := range m.features {
			v, err := fv.Numeric(f)
			if err != nil {
				return 0, err
			}
			x.SetVec(i, v)
		}
		x.SubVec(x, m.means)
		x.DivElemVec(x, m.scales)
		out += mat.Dot(x, m.coefs)
	}
	for _, c := range m.categorical {
		v, err := fv.Categorical(c.Feature)
		if err != nil {
			return 0, err
		}
		out += c.Categories[v]
	}
	return out, nil
}
