package mi

// Estimator computes the information quantities the selection algorithms need.
// Implementations must be pure functions of their inputs so that one estimator can
// be shared by concurrent selections.
type Estimator interface {
	MutualInformation(x, y []int) float64
	ConditionalMutualInformation(x, y, z []int) float64
	JointEntropy(x, y []int) float64
}

var (
	_ Estimator = Discrete{}
	_ Estimator = Weighted{}
)

// Discrete estimates information quantities from plain sample counts.
type Discrete struct{}

func (Discrete) MutualInformation(x, y []int) float64 {
	return MutualInformation(x, y)
}

func (Discrete) ConditionalMutualInformation(x, y, z []int) float64 {
	return ConditionalMutualInformation(x, y, z)
}

func (Discrete) JointEntropy(x, y []int) float64 {
	return JointEntropy(x, y)
}

// Weighted estimates information quantities with per-sample weights. Weights holds
// one non-negative value per sample.
type Weighted struct {
	Weights []float64
}

func (w Weighted) MutualInformation(x, y []int) float64 {
	return WeightedMutualInformation(x, y, w.Weights)
}

func (w Weighted) ConditionalMutualInformation(x, y, z []int) float64 {
	return WeightedConditionalMutualInformation(x, y, z, w.Weights)
}

func (w Weighted) JointEntropy(x, y []int) float64 {
	return WeightedJointEntropy(x, y, w.Weights)
}
