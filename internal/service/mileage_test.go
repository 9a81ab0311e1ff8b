package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockMileageRepo struct {
	results []model.MileageResult
	nextID  int
}

func (m *mockMileageRepo) CreateMileageResult(_ context.Context, result *model.MileageResult) error {
	m.nextID++
	result.ID = fmt.Sprintf("mock-%d", m.nextID)
	m.results = append(m.results, *result)
	return nil
}

func (m *mockMileageRepo) LatestMileage(_ context.Context, userID string) (*model.MileageResult, error) {
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].UserID == userID {
			r := m.results[i]
			return &r, nil
		}
	}
	return nil, apperror.NotFound("mileage result", userID)
}

func (m *mockMileageRepo) MileageHistory(_ context.Context, userID string, opts repository.MileageHistoryOptions) ([]model.MileageResult, error) {
	out := []model.MileageResult{}
	// Newest first; the sort options are exercised in the sqlite tests.
	for i := len(m.results) - 1; i >= 0; i-- {
		r := m.results[i]
		if r.UserID != userID {
			continue
		}
		if opts.Age != "" && r.Age != opts.Age {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockMileageRepo) AverageDesiredMileage(_ context.Context) (*float64, error) {
	if len(m.results) == 0 {
		return nil, nil
	}
	sum := 0
	for _, r := range m.results {
		sum += r.DesiredMileage
	}
	avg := float64(sum) / float64(len(m.results))
	return &avg, nil
}

func TestPlan_UnderTwentyInjuredClampsDesired(t *testing.T) {
	svc := NewMileageService(&mockMileageRepo{}, testLogger())

	latest, history, err := svc.Plan(context.Background(), "u1", model.AgeUnderTwenty, model.InjuryYes, 100)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	// Desired 100 capped at 70; start 20, jump 3, weeks = round(50/3) = 17.
	if latest.DesiredMileage != 70 {
		t.Errorf("DesiredMileage = %d, want 70", latest.DesiredMileage)
	}
	if latest.StartMileage != 20 {
		t.Errorf("StartMileage = %d, want 20", latest.StartMileage)
	}
	if latest.Jump != 3 {
		t.Errorf("Jump = %d, want 3", latest.Jump)
	}
	if latest.Weeks != 17 {
		t.Errorf("Weeks = %d, want 17", latest.Weeks)
	}
	if len(history) != 1 {
		t.Errorf("history has %d entries, want 1", len(history))
	}
}

func TestPlan_FiftyPlusLowTargetClampsStart(t *testing.T) {
	svc := NewMileageService(&mockMileageRepo{}, testLogger())

	latest, _, err := svc.Plan(context.Background(), "u1", model.AgeFiftyPlus, model.InjuryNo, 10)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	// Cap 50 not binding; start clamps from 20 down to desired 10; weeks 0.
	if latest.DesiredMileage != 10 {
		t.Errorf("DesiredMileage = %d, want 10", latest.DesiredMileage)
	}
	if latest.StartMileage != 10 {
		t.Errorf("StartMileage = %d, want 10", latest.StartMileage)
	}
	if latest.Weeks != 0 {
		t.Errorf("Weeks = %d, want 0", latest.Weeks)
	}
}

func TestPlan_HalfWeekRoundsToEven(t *testing.T) {
	svc := NewMileageService(&mockMileageRepo{}, testLogger())

	// Middle bracket, no injury: start 20, jump 4. Desired 30 gives
	// (30-20)/4 = 2.5, which rounds to even: 2, not 3.
	latest, _, err := svc.Plan(context.Background(), "u1", model.AgeTwentyForty, model.InjuryNo, 30)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if latest.Weeks != 2 {
		t.Errorf("Weeks = %d, want 2 (round half to even)", latest.Weeks)
	}

	// (34-20)/4 = 3.5 rounds to 4.
	latest, _, err = svc.Plan(context.Background(), "u1", model.AgeTwentyForty, model.InjuryNo, 34)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if latest.Weeks != 4 {
		t.Errorf("Weeks = %d, want 4 (round half to even)", latest.Weeks)
	}
}

func TestPlan_ValidatesInput(t *testing.T) {
	svc := NewMileageService(&mockMileageRepo{}, testLogger())
	ctx := context.Background()

	cases := []struct {
		name    string
		age     string
		injury  string
		desired int
	}{
		{"bad age", "ancient", model.InjuryNo, 30},
		{"bad injury", model.AgeTwentyForty, "maybe", 30},
		{"zero mileage", model.AgeTwentyForty, model.InjuryNo, 0},
		{"negative mileage", model.AgeTwentyForty, model.InjuryNo, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Plan(ctx, "u1", tc.age, tc.injury, tc.desired)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Plan() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestHistory_ValidatesFilterAndSort(t *testing.T) {
	svc := NewMileageService(&mockMileageRepo{}, testLogger())
	ctx := context.Background()

	if _, err := svc.History(ctx, "u1", "ancient", ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("History(bad age) error = %v, want ErrValidation", err)
	}
	if _, err := svc.History(ctx, "u1", "", "sideways"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("History(bad sort) error = %v, want ErrValidation", err)
	}
	if _, err := svc.History(ctx, "u1", model.AgeUnderTwenty, "asc"); err != nil {
		t.Errorf("History(valid) error = %v", err)
	}
}
