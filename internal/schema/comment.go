package schema

import (
	"regexp"

	v "blog-api/internal/validation"
)

var replyMarker = regexp.MustCompile(`\|@[0-9]\|`)

func commentRules() []v.Rule {
	return []v.Rule{
		v.NonEmpty("Comment cannot be empty"),
		v.MaxLen(4000, "Comment cannot exceed 4000 characters"),
	}
}

// Comment validates the body of a comment create or edit.
func Comment(raw any) v.Result[string] {
	f := v.NewFields(raw)
	content := f.String("content", commentRules()...)
	return v.Finish(f, content)
}

// Reply validates a reply body, which additionally may not contain the
// |@<digit>| marker.
func Reply(raw any) v.Result[string] {
	f := v.NewFields(raw)
	rules := append(commentRules(),
		v.NotMatches(replyMarker, "Replies are not allowed to contain this sequence: |@<number>|"))
	content := f.String("content", rules...)
	return v.Finish(f, content)
}
