package jokeapitests

import "github.com/stretchr/testify/require"

// DoDefinitionTests runs the groups loaded from YAML definition files.
func DoDefinitionTests(t *T) {
	for _, group := range t.env.config.definitions {
		t.Run(group.Name, func(t *T) {
			cases, err := group.Build()
			require.NoError(t, err)
			if len(cases) == 0 {
				t.context.SkipWithReason("group has no cases")
			}
			for _, c := range cases {
				t.RunCase(c)
			}
		})
	}
}
