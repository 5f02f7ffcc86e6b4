package task

// Builtin are the predefined tasks.
var Builtin = []Task{
	{
		Name: "tainted-admin",
		Figures: []Figure{
			{
				Width:   9.6,
				Height:  3.6,
				Filters: []Filter{{Field: "typeUser", Op: "!=", Value: "admin"}},
				X:       "size",
				Y:       "value",
				Lines:   []string{"type"},
				Columns: []string{"typeUser"},
				XScale:  "log",
			},
			{
				Width:   6.4,
				Height:  4.8,
				Filters: []Filter{{Field: "typeUser", Op: "==", Value: "admin"}},
				X:       "size",
				Y:       "value",
				Lines:   []string{"type"},
				XScale:  "log",
			},
		},
	},
	{
		Name: "tainted-dist",
		Figures: []Figure{{
			Width:   9.6,
			Height:  3.6,
			X:       "size",
			Y:       "value",
			Lines:   []string{"type"},
			Columns: []string{"distUserUpd"},
			XScale:  "log",
		}},
	},
	{
		Name: "multicast-size",
		Figures: []Figure{{
			Width:   9.6,
			Height:  3.6,
			X:       "size",
			Y:       "value",
			Lines:   []string{"type"},
			Columns: []string{"setting"},
			XScale:  "log",
		}},
	},
	{
		Name: "multicast-prob",
		Figures: []Figure{{
			Width:  6.4,
			Height: 4.8,
			X:      "pRem",
			Y:      "value",
			Lines:  []string{"type"},
		}},
	},
}
