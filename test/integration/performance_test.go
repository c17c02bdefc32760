package integration

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/calc-engine/internal/engine"
	"go.uber.org/zap"
)

// TestMain runs the integration suite.
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestPerformance checks that a full baseline batch stays fast.
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	start := time.Now()
	results, failures := runConfig(t, "../test_config.yaml")
	elapsed := time.Since(start)

	if len(failures) > 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	t.Logf("Computed %d results in %v", len(results), elapsed)

	if elapsed > 5*time.Second {
		t.Errorf("batch took %v, expected under 5s", elapsed)
	}
}

// TestConcurrentCalculations shares one engine across goroutines.
func TestConcurrentCalculations(t *testing.T) {
	eng := engine.New(zap.NewNop(), engine.DefaultOptions())

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := eng.Calculate(fmt.Sprintf("loan %d", i), engine.TypeLoan, map[string]interface{}{
				"loanAmount":   100000 + i*1000,
				"interestRate": 4.5,
				"loanTerm":     15,
			})
			if err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent calculation failed: %v", err)
	}
}

func BenchmarkLoanCalculation(b *testing.B) {
	eng := engine.New(zap.NewNop(), engine.DefaultOptions())
	inputs := map[string]interface{}{
		"loanAmount":   250000,
		"interestRate": 5.5,
		"loanTerm":     30,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Calculate("mortgage", engine.TypeLoan, inputs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFractionCombine(b *testing.B) {
	eng := engine.New(zap.NewNop(), engine.DefaultOptions())
	inputs := map[string]interface{}{"a": "2 3/4", "b": "5/6", "op": "*"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Calculate("", engine.TypeFraction, inputs); err != nil {
			b.Fatal(err)
		}
	}
}
