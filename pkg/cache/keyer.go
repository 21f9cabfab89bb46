package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a set of inputs.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
	// SummaryKey identifies the summary of a graph.
	SummaryKey(graphHash string) string
}

// ArtifactKeyOpts holds every render option that changes the output bytes.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	Animated      bool    `json:"animated,omitempty"`
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	Background    string  `json:"background,omitempty"`
	NodeColor     string  `json:"node_color,omitempty"`
	EdgeColor     string  `json:"edge_color,omitempty"`
	BackdropColor string  `json:"backdrop_color,omitempty"`
	IDPrefix      string  `json:"id_prefix,omitempty"`
	UsedNodesOnly bool    `json:"used_nodes_only,omitempty"`
	Scale         float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "artifact:<sha256>" and "summary:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the input hash together with the options.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// SummaryKey returns "summary:<graphHash>".
func (DefaultKeyer) SummaryKey(graphHash string) string {
	return "summary:" + graphHash
}

var _ Keyer = DefaultKeyer{}
