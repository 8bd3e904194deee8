package prospects

import (
	"testing"

	"github.com/mskarstad/benchboss/internal/domain/player"
	"github.com/mskarstad/benchboss/internal/platform/random"
)

func TestGenerateBounds(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(random.NewSeeded(11, 17))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p := gen.Generate(player.PositionForward, false, 0)
		if err := p.Validate(); err != nil {
			t.Fatalf("generated invalid player: %v", err)
		}
		if p.Skill < 30 || p.Skill > 69 {
			t.Errorf("unscouted skill %d outside 30..69", p.Skill)
		}
		if p.Potential < p.Skill {
			t.Errorf("potential %d below skill %d", p.Potential, p.Skill)
		}
		if p.Age < player.RecruitAge || p.Age > player.MaxYouthAge {
			t.Errorf("age %d outside recruit range", p.Age)
		}
		if p.Line != player.LineBench {
			t.Errorf("recruit starts on %s, want bench", p.Line)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate prospect id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestGenerateWonderkidFloor(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(random.NewSeeded(2, 3))

	for i := 0; i < 50; i++ {
		p := gen.Generate(player.PositionCenter, true, 5)
		if p.Skill < 75 {
			t.Errorf("wonderkid with scout bonus has skill %d, want >= 75", p.Skill)
		}
	}
}

func TestMishapNonEmpty(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(random.NewSeeded(1, 1))
	if gen.Mishap() == "" {
		t.Fatal("mishap line must not be empty")
	}
}
