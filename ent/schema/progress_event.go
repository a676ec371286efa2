package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ProgressEvent is one applied learner transition.
type ProgressEvent struct {
	ent.Schema
}

func (ProgressEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ProgressEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id"),
		field.String("kind").
			Comment("step, quest, quests, quiz, challenge, unlock, reset"),
		field.String("subject").
			Default("").
			Comment("Quest id, node id or score"),
		field.Int("xp_delta").
			Default(0),
		field.Int("coins_delta").
			Default(0),
		field.Int("level_after").
			Default(1),
	}
}

func (ProgressEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
	}
}
