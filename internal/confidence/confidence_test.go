package confidence

import (
	"testing"

	"github.com/complior/engine/internal/models"
)

func TestForReturnsNilForSkip(t *testing.T) {
	got := For(models.CheckResult{Kind: models.CheckSkip, Layer: "L1"})
	if got != nil {
		t.Errorf("expected nil confidence record for a skip result, got %+v", got)
	}
}

func TestForL1PassAndFail(t *testing.T) {
	pass := For(models.CheckResult{Kind: models.CheckPass, Layer: "L1"})
	if pass == nil || pass.Confidence != 95 || pass.Level != models.LevelPass {
		t.Errorf("unexpected L1 pass record: %+v", pass)
	}

	fail := For(models.CheckResult{Kind: models.CheckFail, Layer: "L1"})
	if fail == nil || fail.Confidence != 98 || fail.Level != models.LevelFail {
		t.Errorf("unexpected L1 fail record: %+v", fail)
	}
}

func TestForL2PartialVsEmpty(t *testing.T) {
	partial := For(models.CheckResult{Kind: models.CheckFail, Layer: "L2", Severity: models.SeverityMedium})
	if partial == nil || partial.Level != models.LevelLikelyPass {
		t.Errorf("expected a medium-severity L2 fail to read as a partial match, got %+v", partial)
	}

	empty := For(models.CheckResult{Kind: models.CheckFail, Layer: "L2", Severity: models.SeverityCritical})
	if empty == nil || empty.Level != models.LevelFail {
		t.Errorf("expected a critical-severity L2 fail to read as empty, got %+v", empty)
	}
}

func TestForL3CriticalOverridesPass(t *testing.T) {
	got := For(models.CheckResult{Kind: models.CheckFail, Layer: "L3", Severity: models.SeverityCritical})
	if got == nil || got.Confidence != 99 || got.Level != models.LevelFail {
		t.Errorf("expected critical L3 fail at 99%% confidence, got %+v", got)
	}
}

func TestForUnknownLayerReturnsNil(t *testing.T) {
	got := For(models.CheckResult{Kind: models.CheckPass, Layer: "L9"})
	if got != nil {
		t.Errorf("expected nil for an unrecognized layer, got %+v", got)
	}
}

func TestAggregateEmptyIsUncertain(t *testing.T) {
	conf, level := Aggregate(nil, nil)
	if conf != 0 || level != models.LevelUncertain {
		t.Errorf("expected zero confidence and UNCERTAIN for no records, got %v %v", conf, level)
	}
}

func TestAggregateMixedDirectionsBelowThresholdIsUncertain(t *testing.T) {
	records := []models.ConfidenceRecord{
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 98},
	}
	kinds := []models.CheckResultKind{models.CheckPass, models.CheckFail}

	_, level := Aggregate(records, kinds)
	if level != models.LevelUncertain {
		t.Errorf("expected a near-even pass/fail split to stay UNCERTAIN, got %v", level)
	}
}

func TestAggregateMajorityDirectionWins(t *testing.T) {
	records := []models.ConfidenceRecord{
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 95},
		{Layer: "L1", Confidence: 98},
	}
	kinds := []models.CheckResultKind{
		models.CheckPass, models.CheckPass, models.CheckPass, models.CheckPass, models.CheckPass,
		models.CheckPass, models.CheckPass, models.CheckPass, models.CheckPass, models.CheckFail,
	}

	conf, level := Aggregate(records, kinds)
	if level != models.LevelPass {
		t.Errorf("expected a 9:1 pass majority to resolve PASS, got %v (confidence %v)", level, conf)
	}
}
