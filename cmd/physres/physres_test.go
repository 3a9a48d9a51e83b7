package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinWhittecar/physcombat/internal/config"
	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/scenario"
)

func TestFormatReport(t *testing.T) {
	tests := []struct {
		r    report.Report
		want string
	}{
		{report.New(report.AttackerHeader).Add("Centurion"), "attacker: Centurion"},
		{report.New(report.AttackHits).Subject(2).Indented(1), "  hits #2"},
		{report.New(report.AttackRoll).Indented(2).Add(8, 11), "    attack-roll: 8, 11"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatReport(tt.r))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, []report.Report{report.New(report.AttackMisses).Subject(3)}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "misses", got["name"])
	assert.EqualValues(t, report.AttackMisses, got["template_id"])
	assert.EqualValues(t, 3, got["subject_id"])
}

func TestParseAnswer(t *testing.T) {
	domino := round.Request{Kind: round.RequestDomino, Hexes: []hexgrid.HexCoord{{Col: 1, Row: 1}, {Col: 2, Row: 1}}}
	ams := round.Request{Kind: round.RequestAMS}

	assert.Equal(t, round.Answer{Choice: 1}, parseAnswer(domino, "1"))
	assert.Equal(t, round.NoAnswer, parseAnswer(domino, "2"))
	assert.Equal(t, round.NoAnswer, parseAnswer(domino, ""))
	assert.Equal(t, round.Answer{Choice: 1}, parseAnswer(ams, " Yes "))
	assert.Equal(t, round.Answer{Choice: 0}, parseAnswer(ams, "n"))
}

func TestPromptDeciderOutOfInput(t *testing.T) {
	var out bytes.Buffer
	d := newPromptDecider(strings.NewReader(""), &out)
	ans, err := d.Decide(context.Background(), round.Request{Kind: round.RequestAMS, Prompt: "engage telemissile?"})
	assert.ErrorIs(t, err, round.ErrNoResponse)
	assert.Equal(t, round.NoAnswer, ans)
	assert.Contains(t, out.String(), "engage telemissile?")
}

func TestScenarioOptionsOverrideConfig(t *testing.T) {
	on, off := true, false
	configured := round.Options{AutoEject: true, GlancingBlows: true}
	tests := []struct {
		name string
		spec scenario.OptionSpec
		want round.Options
	}{
		{"unset keeps config", scenario.OptionSpec{}, configured},
		{"scenario turns a rule off", scenario.OptionSpec{AutoEject: &off},
			round.Options{GlancingBlows: true}},
		{"scenario turns a rule on", scenario.OptionSpec{DirectBlows: &on},
			round.Options{AutoEject: true, GlancingBlows: true, DirectBlows: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Apply(configured))
		})
	}
}

func TestRunScenario(t *testing.T) {
	engine = config.Engine{Generator: string(dice.GeneratorPCG), Seed: 42}

	var out bytes.Buffer
	err := runScenario(context.Background(), "../../internal/scenario/testdata/ridge.yaml",
		runSettings{}, &out, strings.NewReader(""))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "attacker #1: Hatchetman HCT-3F")
	assert.Contains(t, text, "Jenner")
}

func TestScanUnits(t *testing.T) {
	var out bytes.Buffer
	s, err := scanUnits("../../internal/scenario/testdata", true, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, s.files)
	assert.Equal(t, 1, s.loaded)
	assert.Empty(t, s.errors)
	assert.Contains(t, out.String(), "Hatchetman HCT-3F")
}
