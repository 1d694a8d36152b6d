package smells

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ets-tools/arklint/pkg/models"
	"github.com/ets-tools/arklint/pkg/testutil"
)

func check(t *testing.T, a *Analyzer, src string) []models.Issue {
	t.Helper()
	return a.CheckFile(testutil.ParseSource(t, "test.ets", src))
}

func byRule(issues []models.Issue, ruleID string) []models.Issue {
	var out []models.Issue
	for _, iss := range issues {
		if iss.RuleID == ruleID {
			out = append(out, iss)
		}
	}
	return out
}

func methodWithStatements(name string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s(): number {\n", name)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "    let v%d = %d;\n", i, i)
	}
	b.WriteString("    return 0;\n  }\n")
	return b.String()
}

func TestLongMethodStatementLimit(t *testing.T) {
	src := "class A {\n" + methodWithStatements("big", 6) + "}\n"
	a := New(WithMethodLimits(5, 1000))

	issues := byRule(check(t, a, src), RuleLongMethod)
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	iss := issues[0]
	if iss.Severity != models.SeverityWarning {
		t.Errorf("Severity = %v", iss.Severity)
	}
	if iss.MethodName != "big" || iss.ClassName != "A" {
		t.Errorf("issue = %+v", iss)
	}

	short := "class A {\n" + methodWithStatements("ok", 3) + "}\n"
	if issues := byRule(check(t, a, short), RuleLongMethod); len(issues) != 0 {
		t.Errorf("method under the limit flagged: %+v", issues)
	}
}

func TestLongMethodLineLimit(t *testing.T) {
	src := `class A {
  sparse(): number {
    let x = 1;



    return x;
  }
}
`
	a := New(WithMethodLimits(50, 4))
	issues := byRule(check(t, a, src), RuleLongMethod)
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	if !strings.Contains(issues[0].Description, "lines") {
		t.Errorf("description = %q", issues[0].Description)
	}
}

func TestUIBuilderLimits(t *testing.T) {
	builder := func(n int) string {
		var b strings.Builder
		b.WriteString("@Component\nstruct Page {\n  build() {\n")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "    Text('row %d')\n", i)
		}
		b.WriteString("  }\n}\n")
		return b.String()
	}
	a := New(WithUILimits(3, 5))

	if issues := byRule(check(t, a, builder(3)), RuleLongMethod); len(issues) != 0 {
		t.Errorf("builder at the soft limit flagged: %+v", issues)
	}

	issues := byRule(check(t, a, builder(4)), RuleLongMethod)
	if len(issues) != 1 || issues[0].Severity != models.SeverityWarning {
		t.Errorf("soft-limit breach should warn, got %+v", issues)
	}

	issues = byRule(check(t, a, builder(6)), RuleLongMethod)
	if len(issues) != 1 || issues[0].Severity != models.SeverityError {
		t.Errorf("hard-limit breach should error, got %+v", issues)
	}
}

func TestUIBuilderUsesOwnLimitsNotMethodLimits(t *testing.T) {
	var b strings.Builder
	b.WriteString("@Component\nstruct Page {\n  build() {\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "    Text('row %d')\n", i)
	}
	b.WriteString("  }\n}\n")

	// Tight method limit, loose UI limits: the builder passes.
	a := New(WithMethodLimits(2, 1000), WithUILimits(30, 60))
	if issues := byRule(check(t, a, b.String()), RuleLongMethod); len(issues) != 0 {
		t.Errorf("UI builders must not be measured against MaxStmts: %+v", issues)
	}
}

func TestLargeSwitch(t *testing.T) {
	switchSrc := func(cases int) string {
		var b strings.Builder
		b.WriteString("class A {\n  pick(n: number): number {\n    switch (n) {\n")
		for i := 0; i < cases; i++ {
			fmt.Fprintf(&b, "      case %d: return %d;\n", i, i)
		}
		b.WriteString("      default: return -1;\n    }\n  }\n}\n")
		return b.String()
	}
	a := New(WithMinCases(3))

	issues := byRule(check(t, a, switchSrc(3)), RuleLargeSwitch)
	if len(issues) != 1 {
		t.Fatalf("3 cases at minCases 3 should flag, got %d", len(issues))
	}
	if issues[0].Line == 0 {
		t.Error("issue should carry the switch line")
	}

	if issues := byRule(check(t, a, switchSrc(2)), RuleLargeSwitch); len(issues) != 0 {
		t.Errorf("2 cases flagged: %+v", issues)
	}
}

func TestDefaultArmDoesNotCountAsCase(t *testing.T) {
	src := `class A {
  pick(n: number): number {
    switch (n) {
      case 1: return 1;
      case 2: return 2;
      default: return 0;
    }
  }
}
`
	a := New(WithMinCases(3))
	if issues := byRule(check(t, a, src), RuleLargeSwitch); len(issues) != 0 {
		t.Errorf("default must not push the count over the limit: %+v", issues)
	}
}

func TestFeatureEnvy(t *testing.T) {
	src := `class A {
  sync(store: Store): void {
    this.prepare();
    store.open();
    store.write(1);
    store.write(2);
    store.flush();
    store.close();
  }
}
`
	issues := byRule(check(t, New(), src), RuleFeatureEnvy)
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	iss := issues[0]
	if iss.Severity != models.SeveritySuggestion {
		t.Errorf("Severity = %v", iss.Severity)
	}
	if !strings.Contains(iss.Description, `"store"`) {
		t.Errorf("description should name the envied receiver: %q", iss.Description)
	}
}

func TestFeatureEnvyRequiresMinForeignCalls(t *testing.T) {
	src := `class A {
  sync(store: Store): void {
    store.open();
    store.write(1);
    store.close();
  }
}
`
	if issues := byRule(check(t, New(), src), RuleFeatureEnvy); len(issues) != 0 {
		t.Errorf("3 foreign calls under the default threshold flagged: %+v", issues)
	}
}

func TestFeatureEnvyIgnoresBareAndComplexReceivers(t *testing.T) {
	src := `class A {
  run(): void {
    compute();
    compute();
    compute();
    compute();
    compute();
    this.items.refresh();
    this.items.refresh();
    this.items.refresh();
    this.items.refresh();
    this.items.refresh();
  }
}
`
	if issues := byRule(check(t, New(), src), RuleFeatureEnvy); len(issues) != 0 {
		t.Errorf("bare and chained calls carry no envy signal: %+v", issues)
	}
}

func TestFeatureEnvySkipsConstructors(t *testing.T) {
	src := `class A {
  constructor(store: Store) {
    store.open();
    store.init(1);
    store.init(2);
    store.init(3);
    store.close();
  }
}
`
	if issues := byRule(check(t, New(), src), RuleFeatureEnvy); len(issues) != 0 {
		t.Errorf("constructors routinely delegate, must not flag: %+v", issues)
	}
}

func TestForEachArgChecks(t *testing.T) {
	tests := []struct {
		name string
		call string
		want int
	}{
		{"builder one arg", "ForEach(this.items)", 1},
		{"builder two args", "ForEach(this.items, (item: string) => {})", 0},
		{"builder three args", "ForEach(this.items, (item: string) => {}, (item: string) => item)", 0},
		{"builder four args", "ForEach(this.items, a, b, c)", 1},
		{"array one arg", "this.items.forEach((item: string) => {})", 0},
		{"array two args", "this.items.forEach((item: string) => {}, this)", 0},
		{"array zero args", "this.items.forEach()", 1},
		{"array three args", "this.items.forEach(a, b, c)", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "class A {\n  run(): void {\n    " + tt.call + ";\n  }\n}\n"
			issues := byRule(check(t, New(), src), RuleForEachArgs)
			if len(issues) != tt.want {
				t.Errorf("%s: got %d issues, want %d: %+v", tt.call, len(issues), tt.want, issues)
			}
		})
	}
}

func TestForEachBareVsMemberForms(t *testing.T) {
	// A bare forEach and a member ForEach fall outside both rules.
	src := `class A {
  run(): void {
    forEach(this.items);
    this.builder.ForEach(x);
  }
}
`
	if issues := byRule(check(t, New(), src), RuleForEachArgs); len(issues) != 0 {
		t.Errorf("only bare ForEach and member forEach are checked: %+v", issues)
	}
}

func TestSyntheticClassesSkipped(t *testing.T) {
	var b strings.Builder
	b.WriteString("function helper(): number {\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "  let v%d = %d;\n", i, i)
	}
	b.WriteString("  return 0;\n}\n")

	a := New(WithMethodLimits(3, 1000))
	if issues := check(t, a, b.String()); len(issues) != 0 {
		t.Errorf("top-level container is synthetic, got %+v", issues)
	}
}

func TestCleanFileProducesNoIssues(t *testing.T) {
	src := `class A {
  run(): number {
    let x = 1;
    return x;
  }
}
`
	if issues := check(t, New(), src); len(issues) != 0 {
		t.Errorf("got %+v", issues)
	}
}
