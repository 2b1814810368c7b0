package nlp

import (
	"log/slog"

	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/traj"
)

// GenerateOption configures a generation pass.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by the pass. Default: slog.Default().
func WithLogger(l *slog.Logger) GenerateOption {
	return func(o *generateOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// solverOutputs are bound by the fmincon call.
const solverOutputs = "[Qf, fval, exitFlag, output]"

// Generate runs the application callbacks in order and renders the
// resulting program. It returns no text if any step fails.
func Generate(cfg Config, app Application, opts ...GenerateOption) (*Program, error) {
	o := generateOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With("problem", cfg.Name)

	if err := cfg.Validate(); err != nil {
		return nil, &GenerateError{Code: ErrCodeInvalidConfig, Err: err}
	}
	b, err := newBuilder(cfg, log)
	if err != nil {
		return nil, &GenerateError{Code: ErrCodeInvalidConfig, Err: err}
	}

	log.Info("generation starting", "steps", cfg.Steps, "horizon", cfg.Horizon)

	if err := app.InitSettings(b); err != nil {
		return nil, callbackError("InitSettings", err)
	}
	if err := app.AddQuantities(b); err != nil {
		if b.schemaErr != nil {
			return nil, &GenerateError{Code: ErrCodeSchema, Stage: "AddQuantities", Err: err}
		}
		return nil, callbackError("AddQuantities", err)
	}
	if b.schemaErr != nil {
		return nil, &GenerateError{Code: ErrCodeSchema, Stage: "AddQuantities", Err: b.schemaErr}
	}
	if b.schema.SingleStepQuantityCount() == 0 {
		return nil, &GenerateError{Code: ErrCodeSchema, Stage: "AddQuantities", Err: ErrNoQuantities}
	}
	b.init()

	s := b.schema
	start := traj.NewStateValues(s)
	if err := app.CreateStartState(b, start); err != nil {
		return nil, callbackError("CreateStartState", err)
	}
	goal := traj.NewStateValues(s)
	if err := app.CreateGoalState(b, goal); err != nil {
		return nil, callbackError("CreateGoalState", err)
	}
	q0 := traj.NewValues(s, 1)
	if err := app.CreateQ0(b, q0); err != nil {
		return nil, callbackError("CreateQ0", err)
	}
	lb := traj.NewValues(s, 1)
	if err := app.CreateLBounds(b, lb); err != nil {
		return nil, callbackError("CreateLBounds", err)
	}
	ub := traj.NewValues(s, 1)
	if err := app.CreateUBounds(b, ub); err != nil {
		return nil, callbackError("CreateUBounds", err)
	}
	ae := traj.NewConstraintSet()
	if err := app.CreateLinEqualityConstraints(b, ae); err != nil {
		return nil, callbackError("CreateLinEqualityConstraints", err)
	}
	ai := traj.NewConstraintSet()
	if err := app.CreateLinInequalityConstraints(b, ai); err != nil {
		return nil, callbackError("CreateLinInequalityConstraints", err)
	}
	if err := app.DefineCostToGo(b); err != nil {
		return nil, callbackError("DefineCostToGo", err)
	}
	if err := app.DefineConstraints(b); err != nil {
		return nil, callbackError("DefineConstraints", err)
	}
	if b.schemaErr != nil {
		return nil, &GenerateError{Code: ErrCodeSchema, Err: b.schemaErr}
	}

	var post []expr.Expr
	if pp, ok := app.(PostProcessor); ok {
		post, err = pp.PostProcess(b)
		if err != nil {
			return nil, callbackError("PostProcess", err)
		}
	}

	e := emitter{b: b}
	text := expr.Text(expr.Seq(
		expr.FunctionDef(cfg.OutputNames(), cfg.Name),
		e.runBody(start, goal, q0, lb, ub, ae, ai),
		expr.Seq(post...),
		e.costFunction(),
		e.constraintFunction(),
		expr.End(),
	))

	layout := layoutOf(s)
	layout.Equalities = b.eq.Len()
	layout.Inequalities = b.ineq.Len()
	layout.LinEqualities = ae.Len()
	layout.LinInequal = ai.Len()
	layout.CostTerms = len(b.costs)

	log.Info("generation complete",
		"trajectory_size", layout.TrajectorySize,
		"equalities", layout.Equalities,
		"inequalities", layout.Inequalities,
		"cost_terms", layout.CostTerms,
		"bytes", len(text))

	return &Program{Name: cfg.Name, Text: text, Layout: layout}, nil
}

func callbackError(stage string, err error) error {
	return &GenerateError{Code: ErrCodeCallback, Stage: stage, Err: err}
}
