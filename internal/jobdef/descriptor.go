package jobdef

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mu2e/jobdef/internal/common/jobdeferrors"
	"github.com/mu2e/jobdef/internal/common/maps"
	"github.com/mu2e/jobdef/internal/common/slices"
)

const (
	// SetupFromCode as the setup reference means the environment is set up from the embedded code member.
	SetupFromCode = "code"
	// RunNumberKey is the event-id setting sequencers of synthetic job sets are built from.
	RunNumberKey = "source.firstRun"
	// DefaultSubrunKey receives the job index when a descriptor does not name a sub-run key.
	DefaultSubrunKey = "source.firstSubRun"
)

// InputSpec is a file list together with a per-job count. Depending on where it is used the count is a
// merge factor (primary inputs), a sequential slice size (sampling inputs) or a draw size (auxiliary inputs).
// On the wire it is the two element array [count, [files...]].
type InputSpec struct {
	Count int
	Files []string
}

func (s InputSpec) clone() InputSpec {
	return InputSpec{Count: s.Count, Files: slices.Clone(s.Files)}
}

func (s InputSpec) MarshalJSON() ([]byte, error) {
	files := s.Files
	if files == nil {
		files = []string{}
	}
	return json.Marshal([]any{s.Count, files})
}

func (s *InputSpec) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.WithStack(err)
	}
	if len(pair) != 2 {
		return errors.Errorf("expected [count, [files...]] but got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Count); err != nil {
		return errors.Wrap(err, "count")
	}
	if err := json.Unmarshal(pair[1], &s.Files); err != nil {
		return errors.Wrap(err, "files")
	}
	return nil
}

// RawDescriptor is the serialized job parameter document as stored in a job-set archive.
// It is not validated; use NewDescriptor to obtain a Descriptor.
type RawDescriptor struct {
	JobName string       `json:"jobname,omitempty"`
	Setup   string       `json:"setup"`
	Code    string       `json:"code,omitempty"`
	Tasks   RawTaskBlock `json:"tbs"`
}

// RawTaskBlock is the variable part of a RawDescriptor.
type RawTaskBlock struct {
	Inputs        map[string]InputSpec `json:"inputs,omitempty"`
	SamplingInput map[string]InputSpec `json:"samplinginput,omitempty"`
	EventID       map[string]any       `json:"event_id,omitempty"`
	AuxInputs     map[string]InputSpec `json:"auxin,omitempty"`
	OutFiles      map[string]string    `json:"outfiles,omitempty"`
	// nil means the key was absent, which selects DefaultSubrunKey. An empty string disables the sub-run.
	SubrunKey *string `json:"subrunkey,omitempty"`
	SeedKey   string  `json:"seed,omitempty"`
}

// Source is the primary source of events for the jobs of a set: one of *FileInputs, *SamplingInputs or
// *EventIDSource.
type Source interface {
	fmt.Stringer
	clone() Source
	numJobs() int
}

// FileInputs is a single ordered primary input list consumed MergeFactor files per job.
type FileInputs struct {
	Key         string
	MergeFactor int
	Files       []string
}

func (s *FileInputs) String() string { return "inputs" }

func (s *FileInputs) clone() Source {
	return &FileInputs{Key: s.Key, MergeFactor: s.MergeFactor, Files: slices.Clone(s.Files)}
}

func (s *FileInputs) numJobs() int {
	return NumJobs(s.MergeFactor, len(s.Files))
}

// SamplingInputs are file lists consumed sequentially, one InputSpec per dataset tag.
// A count of zero means every job reads the whole list.
type SamplingInputs struct {
	Inputs map[string]InputSpec
}

func (s *SamplingInputs) String() string { return "samplinginput" }

func (s *SamplingInputs) clone() Source {
	return &SamplingInputs{Inputs: maps.MapValues(s.Inputs, InputSpec.clone)}
}

// numJobs assumes the per-tag job counts were checked to agree.
func (s *SamplingInputs) numJobs() int {
	keys := maps.SortedKeys(s.Inputs)
	if len(keys) == 0 {
		return 0
	}
	return samplingJobs(s.Inputs[keys[0]])
}

func samplingJobs(spec InputSpec) int {
	return NumJobs(samplingStride(spec), len(spec.Files))
}

func samplingStride(spec InputSpec) int {
	if spec.Count == 0 {
		return len(spec.Files)
	}
	return spec.Count
}

// EventIDSource is a synthetic source configured with literal settings; job sets using it are unlimited.
type EventIDSource struct {
	Settings map[string]any
}

func (s *EventIDSource) String() string { return "event_id" }

func (s *EventIDSource) clone() Source {
	return &EventIDSource{Settings: cloneSettings(s.Settings)}
}

// cloneSettings copies literal settings together with any lists and tables nested in them.
func cloneSettings(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return maps.MapValues(m, cloneValue)
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneSettings(x)
	case []any:
		if x == nil {
			return x
		}
		rv := make([]any, len(x))
		for i, e := range x {
			rv[i] = cloneValue(e)
		}
		return rv
	case []string:
		return slices.Clone(x)
	default:
		return v
	}
}

func (s *EventIDSource) numJobs() int { return 0 }

// Descriptor is a validated job-set definition. It is never modified after NewDescriptor returns and may be
// shared between goroutines.
type Descriptor struct {
	jobName   string
	setup     string
	code      string
	source    Source
	aux       map[string]InputSpec
	outFiles  map[string]string
	subrunKey *string
	seedKey   string
	njobs     int
}

// NewDescriptor validates raw and converts it into a Descriptor.
// Every violation found is reported; the returned error is a multierror of *jobdeferrors.ErrSchema.
func NewDescriptor(raw *RawDescriptor) (*Descriptor, error) {
	if raw == nil {
		return nil, errors.WithStack(&jobdeferrors.ErrSchema{Message: "missing job parameters"})
	}
	var result *multierror.Error
	fail := func(field string, format string, args ...any) {
		result = multierror.Append(result, &jobdeferrors.ErrSchema{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if raw.Setup == "" {
		fail("setup", "setup reference must not be empty")
	}
	if raw.Setup == SetupFromCode && raw.Code == "" {
		fail("code", "setup is taken from embedded code but no code member is named")
	}

	tbs := raw.Tasks
	present := make([]string, 0, 3)
	if len(tbs.Inputs) > 0 {
		present = append(present, "inputs")
	}
	if len(tbs.EventID) > 0 {
		present = append(present, "event_id")
	}
	if len(tbs.SamplingInput) > 0 {
		present = append(present, "samplinginput")
	}
	if len(present) == 0 {
		fail("tbs", "exactly one of inputs, event_id or samplinginput must be given; found none")
	} else if len(present) > 1 {
		fail("tbs", "exactly one of inputs, event_id or samplinginput must be given; found %v", present)
	}

	var source Source
	switch {
	case len(tbs.Inputs) > 0:
		source = validateFileInputs(tbs.Inputs, fail)
	case len(tbs.EventID) > 0:
		source = &EventIDSource{Settings: cloneSettings(tbs.EventID)}
	case len(tbs.SamplingInput) > 0:
		source = validateSamplingInputs(tbs.SamplingInput, fail)
	}

	if len(tbs.AuxInputs) > 0 && len(tbs.Inputs) == 0 {
		fail("tbs.auxin", "auxiliary inputs are only allowed together with inputs")
	}
	for _, key := range maps.SortedKeys(tbs.AuxInputs) {
		spec := tbs.AuxInputs[key]
		field := "tbs.auxin." + key
		validateFileList(field, spec.Files, fail)
		if spec.Count < 0 {
			fail(field, "count must not be negative but is %d", spec.Count)
		} else if spec.Count > len(spec.Files) {
			fail(field, "count %d exceeds the %d files available", spec.Count, len(spec.Files))
		}
	}

	for _, key := range maps.SortedKeys(tbs.OutFiles) {
		if key == "" {
			fail("tbs.outfiles", "empty configuration key")
		}
		if tbs.OutFiles[key] == "" {
			fail("tbs.outfiles."+key, "output file template must not be empty")
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.WithStack(err)
	}

	d := &Descriptor{
		jobName:  raw.JobName,
		setup:    raw.Setup,
		code:     raw.Code,
		source:   source,
		aux:      maps.MapValues(tbs.AuxInputs, InputSpec.clone),
		outFiles: maps.Clone(tbs.OutFiles),
		seedKey:  tbs.SeedKey,
	}
	if tbs.SubrunKey != nil {
		key := *tbs.SubrunKey
		d.subrunKey = &key
	}
	d.njobs = source.numJobs()
	return d, nil
}

func validateFileInputs(inputs map[string]InputSpec, fail func(string, string, ...any)) Source {
	keys := maps.SortedKeys(inputs)
	if len(keys) != 1 {
		fail("tbs.inputs", "exactly one primary input key is allowed; found %v", keys)
	}
	key := keys[0]
	spec := inputs[key]
	field := "tbs.inputs." + key
	if key == "" {
		fail("tbs.inputs", "empty configuration key")
	}
	if spec.Count <= 0 {
		fail(field, "merge factor must be positive but is %d", spec.Count)
	}
	validateFileList(field, spec.Files, fail)
	return &FileInputs{Key: key, MergeFactor: spec.Count, Files: slices.Clone(spec.Files)}
}

func validateSamplingInputs(inputs map[string]InputSpec, fail func(string, string, ...any)) Source {
	njobs := -1
	var firstKey string
	for _, key := range maps.SortedKeys(inputs) {
		spec := inputs[key]
		field := "tbs.samplinginput." + key
		if key == "" {
			fail("tbs.samplinginput", "empty configuration key")
		}
		validateFileList(field, spec.Files, fail)
		if spec.Count < 0 {
			fail(field, "count must not be negative but is %d", spec.Count)
			continue
		}
		if len(spec.Files) == 0 {
			continue
		}
		n := samplingJobs(spec)
		if njobs < 0 {
			njobs, firstKey = n, key
		} else if n != njobs {
			fail(field, "implies %d jobs but %s implies %d", n, firstKey, njobs)
		}
	}
	return &SamplingInputs{Inputs: maps.MapValues(inputs, InputSpec.clone)}
}

func validateFileList(field string, files []string, fail func(string, string, ...any)) {
	if len(files) == 0 {
		fail(field, "file list must not be empty")
		return
	}
	for i, f := range files {
		if f == "" {
			fail(field, "file %d has an empty name", i)
		}
	}
	if dups := slices.Duplicates(files); len(dups) > 0 {
		fail(field, "file list contains duplicates %v", dups)
	}
}

// JobName identifies the job set; it may be empty.
func (d *Descriptor) JobName() string { return d.jobName }

// Setup is the path of the setup script, or SetupFromCode.
func (d *Descriptor) Setup() string { return d.setup }

// Code names the embedded code member of the archive; empty if there is none.
func (d *Descriptor) Code() string { return d.code }

// Source returns a copy of the primary source of the job set.
func (d *Descriptor) Source() Source { return d.source.clone() }

// AuxInputs returns a copy of the auxiliary (mixing) inputs keyed by configuration key.
func (d *Descriptor) AuxInputs() map[string]InputSpec {
	return maps.MapValues(d.aux, InputSpec.clone)
}

// OutFiles returns a copy of the output file templates keyed by configuration key.
func (d *Descriptor) OutFiles() map[string]string { return maps.Clone(d.outFiles) }

// SubrunKey returns the configured sub-run key and whether one was configured at all.
func (d *Descriptor) SubrunKey() (string, bool) {
	if d.subrunKey == nil {
		return "", false
	}
	return *d.subrunKey, true
}

// SeedKey names the setting that receives the random seed; empty if none.
func (d *Descriptor) SeedKey() string { return d.seedKey }

// NumJobs is the number of jobs in the set, or 0 if the set is unlimited.
func (d *Descriptor) NumJobs() int { return d.njobs }

// Raw converts d back into its serialized form.
func (d *Descriptor) Raw() *RawDescriptor {
	raw := &RawDescriptor{
		JobName: d.jobName,
		Setup:   d.setup,
		Code:    d.code,
		Tasks: RawTaskBlock{
			OutFiles: maps.Clone(d.outFiles),
			SeedKey:  d.seedKey,
		},
	}
	if len(d.aux) > 0 {
		raw.Tasks.AuxInputs = d.AuxInputs()
	}
	if d.subrunKey != nil {
		key := *d.subrunKey
		raw.Tasks.SubrunKey = &key
	}
	switch src := d.source.(type) {
	case *FileInputs:
		raw.Tasks.Inputs = map[string]InputSpec{src.Key: {Count: src.MergeFactor, Files: slices.Clone(src.Files)}}
	case *SamplingInputs:
		raw.Tasks.SamplingInput = maps.MapValues(src.Inputs, InputSpec.clone)
	case *EventIDSource:
		raw.Tasks.EventID = cloneSettings(src.Settings)
	}
	return raw
}
