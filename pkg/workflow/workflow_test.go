package workflow_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/questions"
	"github.com/goliatone/go-regform/pkg/recorder"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
	"github.com/goliatone/go-regform/pkg/widgets"
	"github.com/goliatone/go-regform/pkg/workflow"
)

func scenarioSubmission() validation.Submission {
	return validation.Submission{
		"username":                            "alice",
		"password":                            "secret",
		"Where did you hear about this site?": "friend",
		"What college did you attend?":        "MIT",
		"What year did you graduate?":         "2020",
	}
}

func TestSubmit_ValidRecordsAnswersInOrder(t *testing.T) {
	mem := recorder.NewMemory()
	reg, err := workflow.New(questions.Fixed(testsupport.ScenarioQuestions...), workflow.WithRecorder(mem))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	outcome, err := reg.Submit(testsupport.Context(), scenarioSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Result.Valid() {
		t.Fatalf("expected valid outcome, got %v", outcome.Result.Errors)
	}

	want := []recorder.Entry{
		{Question: "Where did you hear about this site?", Answer: "friend"},
		{Question: "What college did you attend?", Answer: "MIT"},
		{Question: "What year did you graduate?", Answer: "2020"},
	}
	if diff := cmp.Diff(want, mem.Entries()); diff != "" {
		t.Fatalf("recorded entries mismatch (-want +got):\n%s", diff)
	}
	if len(outcome.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(outcome.Answers))
	}
}

func TestSubmit_InvalidRecordsNothing(t *testing.T) {
	mem := recorder.NewMemory()
	reg, err := workflow.New(questions.Fixed(testsupport.ScenarioQuestions...), workflow.WithRecorder(mem))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	submission := scenarioSubmission()
	delete(submission, "password")
	outcome, err := reg.Submit(testsupport.Context(), submission)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"password": "required"}, outcome.Result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if outcome.Answers != nil {
		t.Fatalf("expected no answers, got %v", outcome.Answers)
	}
	if got := len(mem.Entries()); got != 0 {
		t.Fatalf("expected nothing recorded, got %d entries", got)
	}
}

func TestSubmit_StorageFailureStopsAndSurfaces(t *testing.T) {
	cause := errors.New("disk full")
	var calls []string
	rec := recorder.Func(func(_ context.Context, question, _ string) error {
		calls = append(calls, question)
		if len(calls) == 2 {
			return cause
		}
		return nil
	})
	reg, err := workflow.New(questions.Fixed(testsupport.ScenarioQuestions...), workflow.WithRecorder(rec))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	outcome, err := reg.Submit(testsupport.Context(), scenarioSubmission())
	var storageErr *recorder.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if storageErr.Question != "What college did you attend?" || !errors.Is(err, cause) {
		t.Fatalf("unexpected storage error %v", storageErr)
	}
	if len(calls) != 2 {
		t.Fatalf("expected recording to stop after failure, got %v", calls)
	}
	if !outcome.Result.Valid() {
		t.Fatalf("expected outcome to keep the valid result")
	}
}

func TestNew_RejectsDuplicateQuestions(t *testing.T) {
	_, err := workflow.New(questions.Fixed("why?", "why?"))
	if !errors.Is(err, model.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestSchema_StableAcrossCallsForSampledSource(t *testing.T) {
	src, err := questions.NewSample(questions.DefaultPool, 3, questions.WithRand(rand.New(rand.NewPCG(9, 9))))
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	reg, err := workflow.New(src)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	first, err := reg.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := reg.Schema()
		if err != nil {
			t.Fatalf("schema: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("schema changed between requests (-first +again):\n%s", diff)
		}
	}
	if diff := cmp.Diff(src.Questions(), reg.Questions()); diff != "" {
		t.Fatalf("questions mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_AppliesDecorators(t *testing.T) {
	reg, err := workflow.New(questions.None(), workflow.WithDecorators(widgets.NewRegistry()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	schema, err := reg.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	got := []string{schema.Fields[0].Widget, schema.Fields[1].Widget}
	if diff := cmp.Diff([]string{widgets.WidgetText, widgets.WidgetPassword}, got); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}

	failing := model.DecoratorFunc(func(*model.Schema) error { return errors.New("boom") })
	if _, err := workflow.New(questions.None(), workflow.WithDecorators(failing)); err == nil {
		t.Fatalf("expected decorator failure to surface")
	}
}

func TestSubmit_OptionalCredentialsAndConfirmation(t *testing.T) {
	reg, err := workflow.New(questions.Fixed("why?"),
		workflow.WithBuilder(model.NewBuilder(model.WithOptionalCredentials(), model.WithConfirmedPassword())),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	outcome, err := reg.Submit(testsupport.Context(), validation.Submission{"why?": "because"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Result.Valid() {
		t.Fatalf("expected optional credentials to pass, got %v", outcome.Result.Errors)
	}

	mismatch, err := reg.Submit(testsupport.Context(), validation.Submission{
		"why?": "because", "password": "a", "password.confirm": "b",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if mismatch.Result.Errors["password"] != validation.MessageMismatch {
		t.Fatalf("expected mismatch error, got %v", mismatch.Result.Errors)
	}

	relaxed, err := workflow.New(questions.Fixed("why?"),
		workflow.WithBuilder(model.NewBuilder(model.WithOptionalCredentials(), model.WithConfirmedPassword())),
		workflow.WithValidationOptions(validation.WithoutConfirmation()),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	outcome, err = relaxed.Submit(testsupport.Context(), validation.Submission{
		"why?": "because", "password": "a", "password.confirm": "b",
	})
	if err != nil || !outcome.Result.Valid() {
		t.Fatalf("expected confirmation disabled, got %v / %v", err, outcome.Result.Errors)
	}
}

func TestSubmit_ConcurrentUse(t *testing.T) {
	mem := recorder.NewMemory()
	reg, err := workflow.New(questions.Fixed(testsupport.ScenarioQuestions...), workflow.WithRecorder(mem))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Submit(context.Background(), scenarioSubmission()); err != nil {
				t.Errorf("submit: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := len(mem.Entries()); got != 60 {
		t.Fatalf("expected 60 recorded answers, got %d", got)
	}
}
