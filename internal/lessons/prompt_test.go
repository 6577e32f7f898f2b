package lessons

import (
	"strings"
	"testing"
)

func TestBuildInstruction_Standard(t *testing.T) {
	req := GenerationRequest{ClassLevel: 2, Subject: SubjectMathematics, Topic: "  Addition ", Style: StyleChinese, Variant: VariantStandard}
	got := BuildInstruction(req)

	for _, want := range []string{
		"STANDARD METHOD",
		"Class 2 Mathematics",
		`topic "Addition"`,
		"Chinese Style",
		"300-500 words",
		"7-8 year olds",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "GLOBAL") {
		t.Error("standard instruction should not ask for global content")
	}
}

func TestBuildInstruction_Global(t *testing.T) {
	req := GenerationRequest{ClassLevel: 12, Subject: SubjectScience, Topic: "Plants", Style: StyleEuropean, Variant: VariantGlobal}
	got := BuildInstruction(req)

	for _, want := range []string{"GLOBAL VERSION", "500-1000 words", "at least 4 distinct countries", "6-16 year olds"} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q:\n%s", want, got)
		}
	}
}

func TestBuildInstruction_Deterministic(t *testing.T) {
	req := GenerationRequest{ClassLevel: 9, Subject: SubjectHindi, Topic: "कविता", Style: StyleJapanese, Variant: VariantGlobal}
	if BuildInstruction(req) != BuildInstruction(req) {
		t.Fatal("instruction differs between calls")
	}
}

func TestSystemInstruction(t *testing.T) {
	if !strings.Contains(SystemInstruction(VariantStandard), `"hindiTranslation"`) {
		t.Error("standard prompt should describe the flat shape")
	}
	if !strings.Contains(SystemInstruction(VariantGlobal), `"interactiveSection"`) {
		t.Error("global prompt should describe the structured shape")
	}
}
