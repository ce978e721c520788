package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionHeadings(t *testing.T) {
	md := "# Title\n\nIntro.\n\n## Step `one`\n\nText\n\n### Details\n"

	assert.Equal(t, []Heading{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "Step one"},
		{Level: 3, Text: "Details"},
	}, InstructionHeadings(md))

	assert.Empty(t, InstructionHeadings("no headings here"))
}
