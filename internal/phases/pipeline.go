// Completion: 100% - Staged retargeting pipeline complete
package phases

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jnorthrup/TornadoVM/internal/annotations"
	"github.com/jnorthrup/TornadoVM/internal/graph"
)

// pipeline.go - Explicit compilation stages with validation
//
// A compilation request for one procedure runs annotation resolution,
// loop analysis and the parallel rewrite in order, on one goroutine,
// mutating nothing but its own graph. Stage transitions are validated
// so a skipped stage is caught as an internal error rather than a
// silently wrong graph.

// Stage represents a stage in the retargeting pipeline
type Stage int

const (
	StageInit Stage = iota
	StageAnnotationResolution
	StageLoopRewrite
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "Initialization"
	case StageAnnotationResolution:
		return "Annotation Resolution"
	case StageLoopRewrite:
		return "Parallel Loop Rewrite"
	case StageComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Result reports the outcome of one procedure compilation request.
type Result struct {
	RequestID  string
	Procedure  string
	Dimensions int
	// DimensionSizes holds the statically known work-item count per
	// dimension, -1 where the bound is not a compile-time constant.
	DimensionSizes []int64
	// Sequential is set when the rewrite bailed out and the procedure
	// must run in unmodified sequential form.
	Sequential bool
	Bailout    *Bailout
}

// Pipeline drives the retargeting stages over procedure graphs. The
// annotation provider is injected once at construction; resolving it is
// the caller's startup concern.
type Pipeline struct {
	provider annotations.Provider
	reverse  bool
	log      *slog.Logger
	stage    Stage
}

// NewPipeline creates a pipeline bound to an annotation provider.
func NewPipeline(provider annotations.Provider, reverseLoops bool, log *slog.Logger) (*Pipeline, error) {
	if provider == nil {
		return nil, errors.New("pipeline: no annotation provider configured")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{provider: provider, reverse: reverseLoops, log: log}, nil
}

// advance moves the pipeline to the next stage, rejecting skips.
func (p *Pipeline) advance(next Stage) error {
	if next != p.stage+1 {
		return fmt.Errorf("pipeline: invalid stage transition %s -> %s", p.stage, next)
	}
	p.stage = next
	return nil
}

// Compile runs the full pipeline over one procedure graph. A Bailout is
// recoverable: Compile returns a Result with Sequential set and a nil
// error. Any non-nil error is fatal for the compilation unit.
func (p *Pipeline) Compile(g *graph.Graph) (*Result, error) {
	p.stage = StageInit
	result := &Result{
		RequestID: uuid.NewString(),
		Procedure: g.Name(),
	}
	log := p.log.With("request", result.RequestID, "procedure", g.Name())
	log.Info("compilation started", "reverseLoops", p.reverse)

	if err := p.advance(StageAnnotationResolution); err != nil {
		return nil, err
	}
	annotated := ResolveAnnotations(g, p.provider)
	log.Debug("annotations resolved", "stage", StageAnnotationResolution.String(), "annotatedNodes", len(annotated))

	if err := p.advance(StageLoopRewrite); err != nil {
		return nil, err
	}
	rewriter := NewRewriter(g, annotated, p.reverse, log)
	if err := rewriter.Run(); err != nil {
		var bailout *Bailout
		if errors.As(err, &bailout) {
			log.Warn("rewrite bailed out", "reason", bailout.Reason)
			result.Sequential = true
			result.Bailout = bailout
			return result, nil
		}
		return nil, err
	}

	result.Dimensions = rewriter.Dimensions()
	for _, rng := range rewriter.RangeNodes() {
		if size, ok := DimensionSize(g, rng); ok {
			result.DimensionSizes = append(result.DimensionSizes, size)
		} else {
			result.DimensionSizes = append(result.DimensionSizes, -1)
		}
	}

	if err := p.advance(StageComplete); err != nil {
		return nil, err
	}
	log.Info("compilation complete", "dimensions", result.Dimensions)
	return result, nil
}
