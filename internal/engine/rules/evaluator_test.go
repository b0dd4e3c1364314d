package rules_test

import (
	"context"
	"testing"
	"time"

	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/internal/engine/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticKeywords []*types.Keyword

func (s staticKeywords) GetEnabled(context.Context) ([]*types.Keyword, error) {
	return s, nil
}

type staticRules []*types.Rule

func (s staticRules) GetEnabled(context.Context) ([]*types.Rule, error) {
	return s, nil
}

func newEvaluator(t *testing.T, keywords staticKeywords, ruleSet staticRules) *rules.Evaluator {
	t.Helper()

	evaluator := rules.NewEvaluator(keywords, ruleSet, zap.NewNop())
	require.NoError(t, evaluator.Reload(t.Context()))

	return evaluator
}

func TestEvaluateSeverityMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		severity int
		flag     bool
		hide     bool
		del      bool
		warn     bool
		escalate bool
	}{
		{name: "severity 1 flags", severity: 1, flag: true},
		{name: "severity 2 flags and warns", severity: 2, flag: true, warn: true},
		{name: "severity 3 hides and warns", severity: 3, hide: true, warn: true},
		{name: "severity 4 adds escalation", severity: 4, hide: true, warn: true, escalate: true},
		{name: "severity 5 deletes", severity: 5, del: true, warn: true, escalate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			evaluator := newEvaluator(t, staticKeywords{
				{Phrase: "badword", Severity: tt.severity, Action: enum.AutoActionFlag, Enabled: true},
			}, nil)

			decision := evaluator.Evaluate("this contains badword here", nil)
			assert.Equal(t, tt.severity, decision.Severity)
			assert.Equal(t, tt.hide, decision.Hide)
			assert.Equal(t, tt.del, decision.Delete)
			assert.Equal(t, tt.warn, decision.Warn)
			assert.Equal(t, tt.escalate, decision.Escalate)
		})
	}
}

func TestEvaluateMaxSeverityUnion(t *testing.T) {
	t.Parallel()

	evaluator := newEvaluator(t, staticKeywords{
		{Phrase: "mild", Severity: 2, Action: enum.AutoActionFlag, Enabled: true},
		{Phrase: "harsh", Severity: 5, Action: enum.AutoActionDelete, Enabled: true},
	}, nil)

	decision := evaluator.Evaluate("both mild and harsh words", nil)

	// Max severity wins, actions union across matches
	assert.Equal(t, 5, decision.Severity)
	assert.True(t, decision.Delete)
	assert.True(t, decision.Warn)
	assert.True(t, decision.Escalate)
	assert.True(t, decision.Flag) // From the severity-2 keyword's own action
	assert.ElementsMatch(t, []string{"mild", "harsh"}, decision.MatchedKeywords)
}

func TestEvaluateNormalization(t *testing.T) {
	t.Parallel()

	evaluator := newEvaluator(t, staticKeywords{
		{Phrase: "spam", Severity: 3, Action: enum.AutoActionHide, Enabled: true},
	}, nil)

	// Case and diacritics do not evade matching
	assert.True(t, evaluator.Evaluate("this is SPAM", nil).Matched())
	assert.True(t, evaluator.Evaluate("this is spám", nil).Matched())
	assert.False(t, evaluator.Evaluate("this is fine", nil).Matched())
}

func TestEvaluateWordBoundary(t *testing.T) {
	t.Parallel()

	evaluator := newEvaluator(t, staticKeywords{
		{Phrase: "art", Severity: 2, Action: enum.AutoActionFlag, Enabled: true},
		{Phrase: "free money", Severity: 3, Action: enum.AutoActionHide, Enabled: true},
	}, nil)

	// Single tokens match whole words only
	assert.False(t, evaluator.Evaluate("let us start over", nil).Matched())
	assert.True(t, evaluator.Evaluate("nice art!", nil).Matched())

	// Multi-word phrases match as substrings
	assert.True(t, evaluator.Evaluate("get free money now", nil).Matched())
}

func TestEvaluateAutomationRules(t *testing.T) {
	t.Parallel()

	evaluator := newEvaluator(t, nil, staticRules{
		{
			Name:       "new account burst",
			Enabled:    true,
			Conditions: types.RuleConditions{MaxAccountAgeDays: 7, MinRecentComments: 5},
			Actions:    []enum.AutoAction{enum.AutoActionFlag, enum.AutoActionEscalate},
		},
	})

	// Conditions hold: young account with a comment burst
	decision := evaluator.Evaluate("hello", &rules.Context{
		AccountAge:     2 * 24 * time.Hour,
		RecentComments: 6,
	})
	assert.True(t, decision.Flag)
	assert.True(t, decision.Escalate)
	assert.Equal(t, []string{"new account burst"}, decision.MatchedRules)

	// Account too old
	decision = evaluator.Evaluate("hello", &rules.Context{
		AccountAge:     30 * 24 * time.Hour,
		RecentComments: 6,
	})
	assert.False(t, decision.Matched())

	// Not enough comments
	decision = evaluator.Evaluate("hello", &rules.Context{
		AccountAge:     2 * 24 * time.Hour,
		RecentComments: 3,
	})
	assert.False(t, decision.Matched())
}

func TestEvaluateRulesAdditiveWithKeywords(t *testing.T) {
	t.Parallel()

	evaluator := newEvaluator(t,
		staticKeywords{{Phrase: "spam", Severity: 3, Action: enum.AutoActionHide, Enabled: true}},
		staticRules{{
			Name:       "reported account",
			Enabled:    true,
			Conditions: types.RuleConditions{MinRecentReports: 2},
			Actions:    []enum.AutoAction{enum.AutoActionEscalate},
		}},
	)

	decision := evaluator.Evaluate("spam content", &rules.Context{RecentReports: 3})

	// Keyword gives hide+warn at severity 3; the rule adds escalate
	assert.Equal(t, 3, decision.Severity)
	assert.True(t, decision.Hide)
	assert.True(t, decision.Warn)
	assert.True(t, decision.Escalate)
}

func TestEvaluateDeterminism(t *testing.T) {
	t.Parallel()

	evaluator := newEvaluator(t, staticKeywords{
		{Phrase: "spam", Severity: 3, Action: enum.AutoActionHide, Enabled: true},
	}, nil)

	evalCtx := &rules.Context{AccountAge: 48 * time.Hour, RecentComments: 1}

	first := evaluator.Evaluate("some spam here", evalCtx)
	second := evaluator.Evaluate("some spam here", evalCtx)
	assert.Equal(t, first, second)
}

func TestReloadBumpsVersion(t *testing.T) {
	t.Parallel()

	evaluator := rules.NewEvaluator(staticKeywords{}, staticRules{}, zap.NewNop())
	assert.Equal(t, uint64(0), evaluator.SnapshotVersion())

	require.NoError(t, evaluator.Reload(t.Context()))
	assert.Equal(t, uint64(1), evaluator.SnapshotVersion())

	require.NoError(t, evaluator.Reload(t.Context()))
	assert.Equal(t, uint64(2), evaluator.SnapshotVersion())
}
