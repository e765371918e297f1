package jobdef

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mu2e/jobdef/internal/common/maps"
)

// WriteFCL writes the configuration of the job described by plan: the job-set template, unchanged, followed
// by the settings that are specific to this job. Settings are written in a fixed order so the output is
// reproducible.
func WriteFCL(w io.Writer, template string, plan *JobPlan) error {
	bw := bufio.NewWriter(w)
	if template != "" {
		bw.WriteString(template)
		if !strings.HasSuffix(template, "\n") {
			bw.WriteString("\n")
		}
	}
	fmt.Fprintf(bw, "# job %d, sequencer %s\n", plan.Index, plan.Sequencer)

	for _, m := range []map[string][]string{plan.PrimaryInputs, plan.AuxInputs, plan.SamplingInputs} {
		for _, key := range maps.SortedKeys(m) {
			fmt.Fprintf(bw, "%s: %s\n", key, fclValue(m[key]))
		}
	}
	for _, key := range maps.SortedKeys(plan.EventSettings) {
		fmt.Fprintf(bw, "%s: %s\n", key, fclValue(plan.EventSettings[key]))
	}
	for _, key := range maps.SortedKeys(plan.Outputs) {
		fmt.Fprintf(bw, "%s: %s\n", key, fclValue(plan.Outputs[key]))
	}
	if plan.Seed != nil {
		fmt.Fprintf(bw, "%s: %d\n", plan.Seed.Key, plan.Seed.Value)
	}
	return errors.WithStack(bw.Flush())
}

func fclValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []string:
		items := make([]string, len(x))
		for i, s := range x {
			items[i] = strconv.Quote(s)
		}
		return fclList(items)
	case []any:
		items := make([]string, len(x))
		for i, e := range x {
			items[i] = fclValue(e)
		}
		return fclList(items)
	case nil:
		return "nil"
	default:
		return fmt.Sprint(x)
	}
}

func fclList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return "[ " + strings.Join(items, ", ") + " ]"
}
