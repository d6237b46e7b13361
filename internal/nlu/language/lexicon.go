package language

// valence is a compact AFINN-style lexicon tuned for sales conversations.
var valence = map[string]float64{
	"amazing":      4,
	"awesome":      4,
	"excellent":    3,
	"fantastic":    4,
	"great":        3,
	"good":         3,
	"wonderful":    4,
	"perfect":      3,
	"love":         3,
	"like":         2,
	"happy":        3,
	"glad":         3,
	"thanks":       2,
	"thank":        2,
	"pleased":      3,
	"helpful":      2,
	"interested":   2,
	"excited":      3,
	"yes":          1,
	"sure":         1,
	"okay":         1,
	"fine":         2,
	"win":          4,
	"won":          3,
	"progress":     2,
	"opportunity":  2,
	"best":         3,
	"better":       2,
	"nice":         3,
	"bad":          -3,
	"terrible":     -3,
	"awful":        -3,
	"horrible":     -3,
	"worst":        -3,
	"hate":         -3,
	"angry":        -3,
	"upset":        -2,
	"disappointed": -2,
	"frustrating":  -2,
	"frustrated":   -2,
	"annoying":     -2,
	"annoyed":      -2,
	"problem":      -2,
	"problems":     -2,
	"issue":        -1,
	"issues":       -1,
	"broken":       -1,
	"fail":         -2,
	"failed":       -2,
	"failing":      -2,
	"lost":         -3,
	"lose":         -3,
	"losing":       -3,
	"no":           -1,
	"never":        -1,
	"wrong":        -2,
	"slow":         -2,
	"difficult":    -1,
	"hard":         -1,
	"confused":     -2,
	"confusing":    -2,
	"cancel":       -1,
	"cancelled":    -1,
	"urgent":       -1,
	"stuck":        -2,
	"worried":      -3,
	"worry":        -3,
	"sorry":        -1,
}
