package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rpi_trader/internal/metrics"
	"rpi_trader/internal/models"
	health "rpi_trader/internal/modules/health/service"
	strategy "rpi_trader/internal/modules/strategy/service"
	"rpi_trader/internal/notify"
	"rpi_trader/pkg/tracing"
)

type ModeReader interface {
	Read(ctx context.Context) (string, error)
}

type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (models.MarketSnapshot, error)
}

type EntryChecker interface {
	Check(snap models.MarketSnapshot) strategy.EntryVerdict
}

type SRChecker interface {
	Check(h1 models.Series) models.Verdict
}

type DivergenceChecker interface {
	Check(m30 models.Series) strategy.DivergenceVerdict
}

type KijunChecker interface {
	Check(ctx context.Context, h1 models.Series, mode models.Mode) (strategy.KijunVerdict, error)
}

// Deps: всё, что нужно диспетчеру. Metrics и Health могут быть nil.
type Deps struct {
	Mode       ModeReader
	Market     SnapshotFetcher
	Entry      EntryChecker
	SR         SRChecker
	Divergence DivergenceChecker
	Kijun      KijunChecker
	Notifier   notify.Notifier
	Metrics    *metrics.Metrics
	Health     *health.State
	Log        *zap.Logger
}

// Dispatcher: один цикл: режим -> снапшот -> модули режима -> уведомления.
// Циклы не должны пересекаться: Kijun читает и пишет состояние без блокировок.
type Dispatcher struct {
	Deps
	now func() time.Time
}

func NewDispatcher(d Deps) *Dispatcher {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Dispatcher{Deps: d, now: time.Now}
}

func (d *Dispatcher) RunCycle(ctx context.Context) (rep CycleReport, err error) {
	rep = CycleReport{ID: uuid.NewString(), Started: d.now()}
	log := d.Log.With(zap.String("cycle_id", rep.ID))

	span, ctx := tracing.StartSpan(ctx, "dispatcher.RunCycle", map[string]any{"cycle_id": rep.ID})
	defer func() {
		rep.Finished = d.now()
		tracing.FinishSpan(span, err)
		d.observe(rep)
		log.Info("cycle finished",
			zap.String("result", rep.Result),
			zap.String("mode", rep.RawMode),
			zap.Int("messages", len(rep.Messages)),
			zap.Duration("took", rep.Finished.Sub(rep.Started)),
		)
	}()

	raw, err := d.Mode.Read(ctx)
	if err != nil {
		rep.Result = metrics.ResultModeFailed
		log.Error("read mode", zap.Error(err))
		return rep, fmt.Errorf("read mode: %w", err)
	}
	rep.RawMode = raw

	mode, perr := models.ParseMode(raw)
	if perr != nil {
		rep.Result = metrics.ResultNoop
		log.Warn("invalid mode, skipping cycle", zap.Error(perr))
		return rep, nil
	}
	rep.Mode, rep.ModeValid = mode, true
	span.SetTag("mode", mode.String())

	snap, err := d.Market.FetchSnapshot(ctx)
	if err != nil {
		rep.Result = metrics.ResultFetchFailed
		log.Error("fetch snapshot", zap.Error(err))
		return rep, err
	}

	rep.Result = metrics.ResultOK
	switch mode {
	case models.ModeEntrySearch:
		d.entrySearch(ctx, log, snap, &rep)
	case models.ModeManageBuy, models.ModeManageSell:
		d.managePosition(ctx, log, snap, mode, &rep)
	}
	return rep, nil
}

// entrySearch: S/R считается только при сработавшем входе.
func (d *Dispatcher) entrySearch(ctx context.Context, log *zap.Logger, snap models.MarketSnapshot, rep *CycleReport) {
	var fired bool
	d.run(ctx, log, rep, ModuleEntry, func(out *ModuleOutcome) {
		v := d.Entry.Check(snap)
		out.Fired, out.Insufficient = v.Fired, v.Insufficient
		fired = v.Fired
		log.Debug("entry checked",
			zap.String("side", string(v.Side())),
			zap.Bool("buy", v.Buy),
			zap.Bool("sell", v.Sell),
			zap.Any("conditions", v.Conditions),
		)
		if v.HasMessage() {
			out.Forwarded = d.forward(ctx, log, rep, v.Message)
		}
	})
	if !fired {
		return
	}

	d.run(ctx, log, rep, ModuleSR, func(out *ModuleOutcome) {
		v := d.SR.Check(snap.H1)
		out.Fired = v.Fired
		if v.Fired && v.HasMessage() {
			out.Forwarded = d.forward(ctx, log, rep, v.Message)
		}
	})
}

// managePosition: дивергенция и Kijun независимы друг от друга.
func (d *Dispatcher) managePosition(ctx context.Context, log *zap.Logger, snap models.MarketSnapshot, mode models.Mode, rep *CycleReport) {
	d.run(ctx, log, rep, ModuleDivergence, func(out *ModuleOutcome) {
		v := d.Divergence.Check(snap.M30)
		out.Fired, out.Insufficient = v.Fired, v.Insufficient
		if !v.Fired {
			return
		}
		if !v.AllowedIn(mode) {
			log.Debug("divergence filtered by mode",
				zap.Stringer("kind", v.Kind), zap.Stringer("mode", mode))
			return
		}
		out.Forwarded = d.forward(ctx, log, rep, v.Message)
	})

	d.run(ctx, log, rep, ModuleKijun, func(out *ModuleOutcome) {
		v, err := d.Kijun.Check(ctx, snap.H1, mode)
		out.Fired, out.Insufficient, out.Err = v.Fired, v.Insufficient, err
		if err != nil {
			log.Error("kijun state", zap.Error(err))
		}
		if v.Fired && v.HasMessage() {
			out.Forwarded = d.forward(ctx, log, rep, v.Message)
		}
	})
}

// run изолирует модуль: паника одного не мешает остальным.
func (d *Dispatcher) run(ctx context.Context, log *zap.Logger, rep *CycleReport, name string, fn func(out *ModuleOutcome)) {
	out := ModuleOutcome{Module: name}
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("module %s panicked: %v", name, r)
			rep.Result = metrics.ResultPanic
			log.Error("module panicked",
				zap.String("module", name),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			d.critical(ctx, log, out.Err)
		}
		if out.Insufficient {
			log.Debug("module skipped", zap.String("module", name), zap.Error(models.ErrInsufficientData))
		}
		if out.Fired {
			d.Metrics.Signal(name)
		}
		rep.Outcomes = append(rep.Outcomes, out)
	}()
	fn(&out)
}

// forward отправляет сообщение; ошибка доставки только логируется.
func (d *Dispatcher) forward(ctx context.Context, log *zap.Logger, rep *CycleReport, msg string) bool {
	rep.Messages = append(rep.Messages, msg)
	err := d.Notifier.Send(ctx, msg)
	d.Metrics.Alert(err)
	if err != nil {
		log.Warn("notify failed", zap.Error(err))
		return false
	}
	return true
}

func (d *Dispatcher) critical(ctx context.Context, log *zap.Logger, err error) {
	if sendErr := d.Notifier.Send(ctx, fmt.Sprintf("⚠️ Bot Critical Error: %v", err)); sendErr != nil {
		log.Warn("critical alert not delivered", zap.Error(sendErr))
	}
}

func (d *Dispatcher) observe(rep CycleReport) {
	d.Metrics.ObserveCycle(rep.Result, rep.Started)

	mode := -1
	if rep.ModeValid {
		mode = int(rep.Mode)
		d.Metrics.SetMode(mode)
	}
	if d.Health != nil {
		d.Health.TouchCycle(rep.Finished, mode, rep.Result)
		d.Health.SetReady(true)
	}
}
