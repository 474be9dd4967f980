package hrf

import (
	"math"
	"testing"
)

// eventColumns builds conditions columns of rows samples, each with a
// 1 s block every 12 s starting at a condition-specific onset.
func eventColumns(conditions, rows int) [][]float64 {
	columns := make([][]float64, conditions)
	for col := range conditions {
		columns[col] = make([]float64, rows)
		for onset := 300 * col; onset < rows; onset += 1200 {
			for i := onset; i < onset+100 && i < rows; i++ {
				columns[col][i] = 1
			}
		}
	}
	return columns
}

// TestProcessColumnsParallel tests that parallel processing produces correct results.
func TestProcessColumnsParallel(t *testing.T) {
	const (
		conditions = 4
		rows       = 12000 // 2 minutes at 100 samples/s
		tr         = 2.0
	)

	input := eventColumns(conditions, rows)

	convSeq, err := New(&Config{TRDuration: tr, TemporalResolution: DefaultTemporalResolution, EnableParallel: false})
	if err != nil {
		t.Fatalf("Failed to create sequential convolver: %v", err)
	}

	convPar, err := New(&Config{TRDuration: tr, TemporalResolution: DefaultTemporalResolution, EnableParallel: true})
	if err != nil {
		t.Fatalf("Failed to create parallel convolver: %v", err)
	}

	outputSeq, err := convSeq.ProcessColumns(input)
	if err != nil {
		t.Fatalf("Sequential ProcessColumns failed: %v", err)
	}

	outputPar, err := convPar.ProcessColumns(input)
	if err != nil {
		t.Fatalf("Parallel ProcessColumns failed: %v", err)
	}

	if len(outputSeq) != len(outputPar) {
		t.Fatalf("Condition count mismatch: seq=%d, par=%d", len(outputSeq), len(outputPar))
	}

	for col := range conditions {
		if len(outputSeq[col]) != rows/200 {
			t.Fatalf("Condition %d length: got=%d, expected=%d", col, len(outputSeq[col]), rows/200)
		}
		if len(outputSeq[col]) != len(outputPar[col]) {
			t.Fatalf("Condition %d length mismatch: seq=%d, par=%d",
				col, len(outputSeq[col]), len(outputPar[col]))
		}

		// Bit-exact
		for i := range outputSeq[col] {
			if outputSeq[col][i] != outputPar[col][i] {
				t.Errorf("Condition %d row %d mismatch: seq=%v, par=%v",
					col, i, outputSeq[col][i], outputPar[col][i])
				break // Don't flood with errors
			}
		}
	}
}

// TestProcessColumnsConditionIndependence verifies conditions are processed independently.
func TestProcessColumnsConditionIndependence(t *testing.T) {
	const rows = 6000

	conv, err := New(&Config{TRDuration: 1, TemporalResolution: DefaultTemporalResolution, DisableScaling: true, EnableParallel: true})
	if err != nil {
		t.Fatalf("Failed to create convolver: %v", err)
	}

	// One condition never occurs, the other is a single block
	input := make([][]float64, 2)
	input[0] = make([]float64, rows)
	input[1] = make([]float64, rows)
	for i := 100; i < 200; i++ {
		input[1][i] = 1
	}

	output, err := conv.ProcessColumns(input)
	if err != nil {
		t.Fatalf("ProcessColumns failed: %v", err)
	}

	for i, v := range output[0] {
		if v != 0 {
			t.Errorf("Silent condition has non-zero output at row %d: %v", i, v)
			break
		}
	}

	var maxCol1 float64
	for _, v := range output[1] {
		maxCol1 = math.Max(maxCol1, v)
	}
	// Unscaled: 100 samples of an HRF peaking near 1
	if maxCol1 < 50 || maxCol1 > 100 {
		t.Errorf("Block response out of range: max=%v", maxCol1)
	}
}

// TestProcessColumnsSingleCondition verifies one condition works with parallel enabled.
func TestProcessColumnsSingleCondition(t *testing.T) {
	conv, err := New(&Config{
		TRDuration:         TRMultiband,
		TemporalResolution: DefaultTemporalResolution,
		EnableParallel:     true, // Should fall back to sequential for one condition
	})
	if err != nil {
		t.Fatalf("Failed to create convolver: %v", err)
	}

	output, err := conv.ProcessColumns(eventColumns(1, 3000))
	if err != nil {
		t.Fatalf("ProcessColumns failed: %v", err)
	}

	if len(output) != 1 || len(output[0]) != 30 {
		t.Fatalf("Unexpected output shape: %d conditions", len(output))
	}
}

// TestConvolverConcurrentUse verifies one Convolver serves concurrent callers.
func TestConvolverConcurrentUse(t *testing.T) {
	conv, err := New(&Config{TRDuration: TRStandard, TemporalResolution: DefaultTemporalResolution})
	if err != nil {
		t.Fatalf("Failed to create convolver: %v", err)
	}

	input := eventColumns(2, 6000)
	want, err := conv.ProcessColumns(input)
	if err != nil {
		t.Fatalf("ProcessColumns failed: %v", err)
	}

	const workers = 8
	results := make(chan [][]float64, workers)
	errs := make(chan error, workers)
	for range workers {
		go func() {
			got, err := conv.ProcessColumns(input)
			if err != nil {
				errs <- err
				return
			}
			results <- got
		}()
	}

	for range workers {
		select {
		case err := <-errs:
			t.Fatalf("Concurrent ProcessColumns failed: %v", err)
		case got := <-results:
			for col := range want {
				for i := range want[col] {
					if got[col][i] != want[col][i] {
						t.Fatalf("Condition %d row %d: got=%v, want=%v", col, i, got[col][i], want[col][i])
					}
				}
			}
		}
	}
}
