package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions in the shape ent's migration engine expects.

var (
	// DocumentsColumns holds the keyed JSON documents (user state, quests).
	DocumentsColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "body", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeTime},
	}
	DocumentsTable = &schema.Table{
		Name:       "documents",
		Columns:    DocumentsColumns,
		PrimaryKey: []*schema.Column{DocumentsColumns[0]},
	}

	// LlmRequestEventsColumns records every generative-AI call.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Default: ""},
		{Name: "response_body", Type: field.TypeString, Default: ""},
	}
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LlmRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LlmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{LlmRequestEventsColumns[9]}},
		},
	}

	// ProgressEventsColumns is the append-only log of applied transitions.
	ProgressEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString, Default: ""},
		{Name: "xp_delta", Type: field.TypeInt, Default: 0},
		{Name: "coins_delta", Type: field.TypeInt, Default: 0},
		{Name: "level_after", Type: field.TypeInt, Default: 1},
	}
	ProgressEventsTable = &schema.Table{
		Name:       "progress_events",
		Columns:    ProgressEventsColumns,
		PrimaryKey: []*schema.Column{ProgressEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "progressevent_timestamp", Columns: []*schema.Column{ProgressEventsColumns[2]}},
			{Name: "progressevent_kind", Columns: []*schema.Column{ProgressEventsColumns[4]}},
		},
	}

	// GlobalSequenceColumns is the single-row counter shared by all event tables.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		DocumentsTable,
		LlmRequestEventsTable,
		ProgressEventsTable,
		GlobalSequenceTable,
	}
)
