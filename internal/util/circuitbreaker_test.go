package util

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute, time.Minute, nil, zap.NewNop())

	if !cb.CanExecute() {
		t.Fatal("fresh breaker must be closed")
	}

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	if !cb.CanExecute() {
		t.Fatal("two failures are under the threshold")
	}

	cb.RecordFailure(0)
	if cb.CanExecute() {
		t.Fatal("three failures should open the circuit")
	}
	if cb.GetStatus().State != CircuitStateOpen {
		t.Errorf("state = %s, want OPEN", cb.GetStatus().State)
	}
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute, time.Minute, nil, zap.NewNop())

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	cb.RecordSuccess()
	cb.RecordFailure(0)
	cb.RecordFailure(0)

	if !cb.CanExecute() {
		t.Fatal("success must reset the consecutive failure count")
	}
}

func TestCircuitBreakerTimeBasedRecovery(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond, time.Minute, nil, zap.NewNop())

	cb.RecordFailure(0)
	if cb.CanExecute() {
		t.Fatal("circuit should be open")
	}

	time.Sleep(20 * time.Millisecond)

	if !cb.CanExecute() {
		t.Fatal("circuit should half-open after the reset timeout")
	}
	if cb.GetStatus().State != CircuitStateHalfOpen {
		t.Errorf("state = %s, want HALF_OPEN", cb.GetStatus().State)
	}

	cb.RecordSuccess()
	if cb.GetStatus().State != CircuitStateClosed {
		t.Errorf("state = %s, want CLOSED after half-open success", cb.GetStatus().State)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(1, 5*time.Millisecond, time.Minute, nil, zap.NewNop())

	cb.RecordFailure(0)
	time.Sleep(10 * time.Millisecond)
	if cb.GetState() != CircuitStateHalfOpen {
		t.Fatal("expected half-open state")
	}

	cb.RecordFailure(time.Minute)
	if cb.CanExecute() {
		t.Fatal("failure during recovery must reopen the circuit")
	}
}

func TestCircuitBreakerManualReset(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Hour, time.Hour, nil, zap.NewNop())

	cb.RecordFailure(0)
	if cb.CanExecute() {
		t.Fatal("circuit should be open")
	}

	cb.Reset()
	if !cb.CanExecute() {
		t.Fatal("manual reset must close the circuit")
	}
	if cb.GetStatus().FailureCount != 0 {
		t.Error("manual reset must clear the failure count")
	}
}
