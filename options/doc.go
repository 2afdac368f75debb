// Package options loads mapping profiles: YAML documents selecting the
// conversion categories, time layouts, member tag and batch concurrency a
// mapper is built with.
//
// Example profile:
//
//	version: "1"
//	categories: [safe_number, text_number, datetime]
//	time_layouts: ["2006-01-02"]
//	tag: map
//	concurrency: 4
package options
