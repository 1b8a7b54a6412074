// Package converter drives a batch conversion run.
//
// A run discovers every JPEG and PNG under the source root, mirrors each
// file's directory under the destination root, and fans out one job per
// target format plus one same-format compression job. Jobs of a file run
// concurrently and are always all awaited; a failing job is recorded in the
// report and never stops its siblings or later files.
package converter
