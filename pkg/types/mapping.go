// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the gradepack pipeline.
package types

// PageMapRow is one row of the page-mapping table. It ties a question
// identifier ("1", "2a", "3b(i)") to page ranges in the question paper
// and the mark scheme. Either page spec may be empty.
type PageMapRow struct {
	Question        string `json:"question" yaml:"question"`
	QuestionPages   string `json:"question_pages" yaml:"question_pages"`
	MarkSchemePages string `json:"mark_scheme_pages" yaml:"mark_scheme_pages"`
}

// QuestionGroup collects the mapping rows that share a main question
// number, together with the union of their page ranges. Groups are built
// once from the full table and read-only afterwards.
type QuestionGroup struct {
	// MainID is the group key, e.g. "Q1".
	MainID string

	// Number is the parsed main question number, e.g. 1.
	Number int

	// Rows are the group's mapping rows in table order.
	Rows []PageMapRow

	// QuestionPages is the sorted union of 1-based question-paper pages
	// across the group's rows.
	QuestionPages []int

	// MarkSchemePages is the sorted union of 1-based mark-scheme pages
	// across the group's rows.
	MarkSchemePages []int
}

// Student identifies one student response PDF. Name is the filename with
// its extension stripped.
type Student struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}
