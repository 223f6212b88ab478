package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Options configures a Searcher.
type Options struct {
	// HashMB is the transposition table size in megabytes.
	HashMB int
	// MaxDepth caps iterative deepening.
	MaxDepth int
	// DefaultBudget is used when FindBestMove is given a zero budget.
	DefaultBudget time.Duration
	// CheckExtensionLimit bounds the extensions along one line. A negative
	// value disables extensions.
	CheckExtensionLimit int

	// Late move reductions apply from move LMRMinMoves onwards, at depth
	// LMRMinDepth or more, and cut LMRReduction plies. A negative
	// LMRMinMoves disables them.
	LMRMinMoves  int
	LMRMinDepth  int
	LMRReduction int

	// OnInfo, when set, receives a report after every completed depth.
	OnInfo InfoFunc
	Logger zerolog.Logger
}

// DefaultOptions returns the stock engine configuration.
func DefaultOptions() Options {
	return Options{
		HashMB:              DefaultHashMB,
		MaxDepth:            64,
		DefaultBudget:       time.Hour,
		CheckExtensionLimit: 12,
		LMRMinMoves:         3,
		LMRMinDepth:         3,
		LMRReduction:        2,
		Logger:              zerolog.Nop(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.HashMB <= 0 {
		o.HashMB = def.HashMB
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = def.MaxDepth
	}
	o.MaxDepth = Min(o.MaxDepth, MaxPly/2)
	if o.DefaultBudget <= 0 {
		o.DefaultBudget = def.DefaultBudget
	}
	if o.CheckExtensionLimit == 0 {
		o.CheckExtensionLimit = def.CheckExtensionLimit
	}
	if o.LMRMinMoves == 0 {
		o.LMRMinMoves = def.LMRMinMoves
	}
	if o.LMRMinDepth <= 0 {
		o.LMRMinDepth = def.LMRMinDepth
	}
	if o.LMRReduction <= 0 {
		o.LMRReduction = def.LMRReduction
	}
	return o
}
