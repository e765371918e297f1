// Package jobdef resolves the individual jobs of a job set.
//
// A job set bundles a configuration template with an input and output plan. Jobs are numbered from zero,
// and everything that differs between them (which input files a job reads, which auxiliary files it mixes
// in, its output file names, its sub-run number and its random seed) is computed from the Descriptor and
// the job index alone. Nothing is cached and nothing is modified, so a Descriptor and a Resolver can be
// shared freely between goroutines.
//
// The primary source of a job set is one of
//   - FileInputs: a single file list consumed a fixed number of files per job,
//   - SamplingInputs: one file list per dataset tag, each consumed sequentially,
//   - EventIDSource: literal settings for a synthetic source; such sets are unlimited.
//
// Auxiliary inputs may accompany FileInputs and are sampled per job, without replacement, from a
// pseudo-random sequence seeded by the job index and the candidate files.
//
// Every job has a sequencer, the token that ties its output files to its inputs. It is the smallest
// sequencer among the job's input files, or RRRRRR_SSSSSSSS (run number, job index) for synthetic sets.
package jobdef
