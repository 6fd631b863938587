package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/jxview/internal/diagnose"
	"github.com/mcncl/jxview/internal/fixer"
	"github.com/mcncl/jxview/internal/formatter"
	"github.com/mcncl/jxview/internal/parser"
	"github.com/mcncl/jxview/internal/search"
	"github.com/mcncl/jxview/internal/tree"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(rng *rand.Rand, depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"count":      rng.Intn(100),
			"enabled":    rng.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(rng, depth-1, width)
	}
	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})

	for i := 0; i < fieldCount; i++ {
		// Mix different types of fields
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("float_field_%d", i)] = float64(i) + 0.5
		case 4:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]interface{}{
				"id":    i,
				"name":  fmt.Sprintf("Object %d", i),
				"value": i * 10,
			}
		}
	}

	return result
}

func marshal(b *testing.B, v interface{}) string {
	b.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(b, err)
	return string(data)
}

// BenchmarkDeepNesting benchmarks parsing and formatting deeply nested documents
func BenchmarkDeepNesting(b *testing.B) {
	for _, depth := range []int{3, 5, 7} {
		b.Run(fmt.Sprintf("Depth%d", depth), func(b *testing.B) {
			text := marshal(b, generateNestedJSON(rand.New(rand.NewSource(42)), depth, 3))
			f := formatter.NewFormatter()
			b.SetBytes(int64(len(text)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				parsed, err := parser.ParseString(text)
				require.NoError(b, err)
				_ = f.FormatJSON(parsed.Root)
			}
		})
	}
}

// BenchmarkWideStructures benchmarks building and searching the tree of wide objects
func BenchmarkWideStructures(b *testing.B) {
	for _, fields := range []int{100, 1000, 5000} {
		b.Run(fmt.Sprintf("Fields%d", fields), func(b *testing.B) {
			parsed, err := parser.ParseString(marshal(b, generateWideJSON(fields)))
			require.NoError(b, err)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				engine := search.New(tree.Build(parsed.Root))
				if engine.Search("name") == 0 {
					b.Fatal("expected matches")
				}
			}
		})
	}
}

// BenchmarkRepair benchmarks diagnosing and fixing a broken document
func BenchmarkRepair(b *testing.B) {
	for _, items := range []int{100, 1000} {
		b.Run(fmt.Sprintf("%dItems", items), func(b *testing.B) {
			text := string(generateLargeJSON(b, "", items))
			broken := strings.Replace(text, "\n  }\n]", ",\n  }\n]", 1)
			_, parseErr := parser.ParseString(broken)
			require.Error(b, parseErr)

			d := diagnose.New(fixer.New())
			b.SetBytes(int64(len(broken)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if !d.Diagnose(broken, parseErr).HasFix() {
					b.Fatal("expected a fix")
				}
			}
		})
	}
}
