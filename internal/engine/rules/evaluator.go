package rules

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/pkg/utils"
	"go.uber.org/zap"
)

// KeywordStore loads the enabled keyword list.
type KeywordStore interface {
	GetEnabled(ctx context.Context) ([]*types.Keyword, error)
}

// RuleStore loads the enabled automation rules.
type RuleStore interface {
	GetEnabled(ctx context.Context) ([]*types.Rule, error)
}

// Context is the caller-supplied view of the actor at evaluation time.
// The evaluator reads nothing else, so two calls with equal inputs
// always produce equal decisions.
type Context struct {
	AccountAge     time.Duration
	RecentComments int
	RecentReports  int
}

// Decision is the combined outcome of keyword and rule evaluation.
type Decision struct {
	Flag            bool
	Hide            bool
	Delete          bool
	Warn            bool
	Escalate        bool
	Severity        int
	MatchedKeywords []string
	MatchedRules    []string
}

// Matched reports whether anything triggered.
func (d *Decision) Matched() bool {
	return len(d.MatchedKeywords) > 0 || len(d.MatchedRules) > 0
}

type matchKeyword struct {
	phrase     string
	normalized string
	multiWord  bool
	severity   int
	action     enum.AutoAction
}

type snapshot struct {
	keywords []matchKeyword
	rules    []*types.Rule
	version  uint64
}

// Evaluator matches content against banned keywords and automation
// rules. Evaluation runs against an immutable snapshot; Reload swaps in
// a new one atomically so in-flight evaluations are never mixed.
type Evaluator struct {
	keywordStore KeywordStore
	ruleStore    RuleStore
	snapshot     atomic.Pointer[snapshot]
	version      atomic.Uint64
	logger       *zap.Logger
}

// NewEvaluator creates an evaluator with an empty snapshot. Call Reload
// before evaluating.
func NewEvaluator(keywordStore KeywordStore, ruleStore RuleStore, logger *zap.Logger) *Evaluator {
	e := &Evaluator{
		keywordStore: keywordStore,
		ruleStore:    ruleStore,
		logger:       logger.Named("rules"),
	}
	e.snapshot.Store(&snapshot{})

	return e
}

// Reload fetches enabled keywords and rules and swaps the active
// snapshot. Phrases are normalized once here so evaluation only does
// lookups.
func (e *Evaluator) Reload(ctx context.Context) error {
	keywords, err := e.keywordStore.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}

	rules, err := e.ruleStore.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	normalizer := utils.NewTextNormalizer()
	matchers := make([]matchKeyword, 0, len(keywords))

	for _, kw := range keywords {
		normalized := normalizer.Normalize(kw.Phrase)
		if normalized == "" {
			e.logger.Warn("Skipping keyword that normalizes to nothing", zap.String("phrase", kw.Phrase))
			continue
		}

		matchers = append(matchers, matchKeyword{
			phrase:     kw.Phrase,
			normalized: normalized,
			multiWord:  strings.ContainsRune(normalized, ' '),
			severity:   kw.Severity,
			action:     kw.Action,
		})
	}

	version := e.version.Add(1)
	e.snapshot.Store(&snapshot{keywords: matchers, rules: rules, version: version})

	e.logger.Info("Reloaded evaluation snapshot",
		zap.Uint64("version", version),
		zap.Int("keywords", len(matchers)),
		zap.Int("rules", len(rules)))

	return nil
}

// SnapshotVersion returns the version counter of the active snapshot.
func (e *Evaluator) SnapshotVersion() uint64 {
	return e.snapshot.Load().version
}

// Evaluate checks content against the active snapshot. The decision
// carries the maximum matched severity; actions are the union of the
// severity mapping, each matched keyword's own action, and each
// satisfied rule's actions.
func (e *Evaluator) Evaluate(content string, evalCtx *Context) *Decision {
	snap := e.snapshot.Load()
	decision := &Decision{}

	normalizer := utils.NewTextNormalizer()

	normalized := normalizer.Normalize(content)
	if normalized != "" {
		tokens := tokenize(normalized)

		for _, kw := range snap.keywords {
			if !kw.matches(normalized, tokens) {
				continue
			}

			decision.MatchedKeywords = append(decision.MatchedKeywords, kw.phrase)

			if kw.severity > decision.Severity {
				decision.Severity = kw.severity
			}

			decision.applyAction(kw.action)
		}
	}

	decision.applySeverity()

	if evalCtx != nil {
		for _, rule := range snap.rules {
			if !ruleMatches(rule, evalCtx) {
				continue
			}

			decision.MatchedRules = append(decision.MatchedRules, rule.Name)

			for _, action := range rule.Actions {
				decision.applyAction(action)
			}
		}
	}

	return decision
}

// matches checks a keyword against pre-normalized content. Single
// tokens match on word boundaries so "art" never flags "start";
// multi-word phrases match as substrings.
func (kw *matchKeyword) matches(normalized string, tokens map[string]struct{}) bool {
	if kw.multiWord {
		return strings.Contains(normalized, kw.normalized)
	}

	_, ok := tokens[kw.normalized]

	return ok
}

// tokenize splits normalized content into a word set, trimming
// punctuation from token edges.
func tokenize(normalized string) map[string]struct{} {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t'
	})

	tokens := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r > 127)
		})
		if token != "" {
			tokens[token] = struct{}{}
		}
	}

	return tokens
}

// ruleMatches evaluates a rule's conditions against the event context.
// Unset conditions pass; a rule with no set conditions never matches.
func ruleMatches(rule *types.Rule, evalCtx *Context) bool {
	cond := rule.Conditions
	if cond.MaxAccountAgeDays == 0 && cond.MinRecentComments == 0 && cond.MinRecentReports == 0 {
		return false
	}

	if cond.MaxAccountAgeDays > 0 {
		maxAge := time.Duration(cond.MaxAccountAgeDays) * 24 * time.Hour
		if evalCtx.AccountAge > maxAge {
			return false
		}
	}

	if cond.MinRecentComments > 0 && evalCtx.RecentComments < cond.MinRecentComments {
		return false
	}

	if cond.MinRecentReports > 0 && evalCtx.RecentReports < cond.MinRecentReports {
		return false
	}

	return true
}

// applySeverity folds the severity ladder into the action flags.
func (d *Decision) applySeverity() {
	switch {
	case d.Severity >= 5:
		d.Delete = true
		d.Warn = true
		d.Escalate = true
	case d.Severity == 4:
		d.Hide = true
		d.Warn = true
		d.Escalate = true
	case d.Severity == 3:
		d.Hide = true
		d.Warn = true
	case d.Severity == 2:
		d.Flag = true
		d.Warn = true
	case d.Severity == 1:
		d.Flag = true
	}
}

func (d *Decision) applyAction(action enum.AutoAction) {
	switch action {
	case enum.AutoActionFlag:
		d.Flag = true
	case enum.AutoActionHide:
		d.Hide = true
	case enum.AutoActionDelete:
		d.Delete = true
	case enum.AutoActionWarn:
		d.Warn = true
	case enum.AutoActionEscalate:
		d.Escalate = true
	}
}
