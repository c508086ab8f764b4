package engine

import (
	"context"
	"time"

	. "github.com/ChizhovVadim/CounterTree/pkg/common"
)

const (
	defaultMovesToGo = 40
	moveOverhead     = 300 * time.Millisecond
	minThinkTime     = time.Millisecond
)

// simpleTimeManager turns UCI limits into a context deadline.
// On every progress report it may stop the search before the deadline:
// after the soft limit, or when the best root move has not changed for half of it.
type simpleTimeManager struct {
	start       time.Time
	limits      LimitsType
	softLimit   time.Duration
	hardLimit   time.Duration
	cancel      context.CancelFunc
	bestMove    Move
	stableSince time.Time
}

func newSimpleTimeManager(ctx context.Context, start time.Time,
	limits LimitsType, p *Position) (context.Context, *simpleTimeManager) {

	var tm = &simpleTimeManager{
		start:       start,
		limits:      limits,
		stableSince: start,
	}

	if limits.MoveTime > 0 {
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
	} else if clock, inc := sideClock(limits, p.WhiteMove); clock > 0 {
		tm.softLimit, tm.hardLimit = timeBudget(clock, inc, limits.MovesToGo)
	}

	var cancel context.CancelFunc
	if tm.hardLimit != 0 {
		ctx, cancel = context.WithDeadline(ctx, start.Add(tm.hardLimit))
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	tm.cancel = cancel
	return ctx, tm
}

func sideClock(limits LimitsType, white bool) (clock, inc time.Duration) {
	if white {
		return time.Duration(limits.WhiteTime) * time.Millisecond,
			time.Duration(limits.WhiteIncrement) * time.Millisecond
	}
	return time.Duration(limits.BlackTime) * time.Millisecond,
		time.Duration(limits.BlackIncrement) * time.Millisecond
}

func (tm *simpleTimeManager) OnProgress(si SearchInfo) {
	if tm.limits.Infinite {
		return
	}
	if tm.limits.Mate != 0 && si.Score.Mate > 0 && si.Score.Mate <= tm.limits.Mate {
		tm.cancel()
		return
	}
	if tm.softLimit == 0 {
		return
	}
	var now = time.Now()
	if len(si.MainLine) != 0 && si.MainLine[0] != tm.bestMove {
		tm.bestMove = si.MainLine[0]
		tm.stableSince = now
	}
	var elapsed = now.Sub(tm.start)
	if elapsed >= tm.softLimit ||
		elapsed >= tm.softLimit/2 && now.Sub(tm.stableSince) >= tm.softLimit/2 {
		tm.cancel()
	}
}

func (tm *simpleTimeManager) Close() {
	tm.cancel()
}

// timeBudget splits the remaining clock over the moves still to play.
// hard is three times soft and neither exceeds the clock.
func timeBudget(clock, inc time.Duration, movesToGo int) (soft, hard time.Duration) {
	clock = Max(clock-moveOverhead, minThinkTime)

	var perMove time.Duration
	if movesToGo == 0 {
		perMove = clock/35 + inc/2
	} else {
		perMove = clock/time.Duration(Min(movesToGo, defaultMovesToGo)+1) + inc
	}
	soft = perMove * 7 / 10
	hard = 3 * soft

	soft = Min(Max(soft, minThinkTime), clock)
	hard = Min(Max(hard, minThinkTime), clock)
	return
}
