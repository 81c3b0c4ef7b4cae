package recommend

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Validate(t *testing.T) {
	require.NoError(t, Tree().Validate())

	tests := []struct {
		name string
		node *Node
	}{
		{name: "question and leaf", node: &Node{Question: "q", Neighborhood: "x", Options: []Option{opt(Yes, "", leaf("y"))}}},
		{name: "leaf with options", node: &Node{Neighborhood: "x", Options: []Option{opt(Yes, "", leaf("y"))}}},
		{name: "question without options", node: &Node{Question: "q"}},
		{name: "uppercase value", node: question("q", opt("SI", "", leaf("y")))},
		{name: "duplicate value", node: question("q", opt(Yes, "", leaf("y")), opt(Yes, "", leaf("z")))},
		{name: "missing child", node: question("q", opt(Yes, "", nil))},
		{name: "nested", node: question("q", opt(Yes, "", &Node{Question: "q2"}))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.node.Validate())
		})
	}
}

func TestTree_Leaves(t *testing.T) {
	leaves := Tree().Leaves()
	assert.Len(t, leaves, 20)
	assert.Len(t, Neighborhoods(), 18)

	for _, l := range leaves {
		assert.True(t, IsKnownNeighborhood(l.Neighborhood), l.Neighborhood)
		assert.Equal(t, Result{Neighborhood: l.Neighborhood}, Walk(Tree(), l.Answers), l.Answers)
	}
	assert.False(t, IsKnownNeighborhood("000000000000000000000000"))
	assert.False(t, IsKnownNeighborhood(SentinelNoMatch))
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    string
	}{
		{name: "<15000 si", answers: []string{"<15000", "si"}, want: "66151d0bcc0535e96a0e7aed"},
		{name: "<15000 no", answers: []string{"<15000", "no"}, want: "66151d0bcc0535e96a0e7aef"},
		{name: "15000-25000 si", answers: []string{"15000-25000", "si"}, want: "66151d0bcc0535e96a0e7ae7"},
		{name: "15000-25000 no si", answers: []string{"15000-25000", "no", "si"}, want: "66151d0bcc0535e96a0e7aeb"},
		{name: "15000-25000 no no", answers: []string{"15000-25000", "no", "no"}, want: "66151d0bcc0535e96a0e7ae9"},
		{name: "25000-40000 si", answers: []string{"25000-40000", "si"}, want: "661520ab4fe57713db09c86b"},
		{name: "25000-40000 no si si", answers: []string{"25000-40000", "no", "si", "si"}, want: "66151d0bcc0535e96a0e7ae1"},
		{name: "25000-40000 no si no", answers: []string{"25000-40000", "no", "si", "no"}, want: "66151d0bcc0535e96a0e7ae3"},
		{name: "25000-40000 no no", answers: []string{"25000-40000", "no", "no"}, want: "66151d0bcc0535e96a0e7ae5"},
		{name: "40000-75000 si si", answers: []string{"40000-75000", "si", "si"}, want: "66151d0bcc0535e96a0e7ad9"},
		{name: "40000-75000 si no", answers: []string{"40000-75000", "si", "no"}, want: "66151d0bcc0535e96a0e7adb"},
		{name: "40000-75000 no si", answers: []string{"40000-75000", "no", "si"}, want: "66151d0bcc0535e96a0e7add"},
		{name: "40000-75000 no no", answers: []string{"40000-75000", "no", "no"}, want: "66151d0bcc0535e96a0e7adf"},
		{name: ">75000 si no", answers: []string{">75000", "si", "no"}, want: "66151d0acc0535e96a0e7ad3"},
		{name: ">75000 si si", answers: []string{">75000", "si", "si"}, want: "66151d0acc0535e96a0e7ad1"},
		{name: ">75000 no si si", answers: []string{">75000", "no", "si", "si"}, want: "66151d0acc0535e96a0e7ad5"},
		{name: ">75000 no si no", answers: []string{">75000", "no", "si", "no"}, want: "66151d0bcc0535e96a0e7ad7"},
		{name: ">75000 no no si", answers: []string{">75000", "no", "no", "si"}, want: "66151d0acc0535e96a0e7ad5"},
		{name: ">75000 no no no", answers: []string{">75000", "no", "no", "no"}, want: "66151d0bcc0535e96a0e7ad7"},
		{name: "estudiante", answers: []string{"estudiante"}, want: "661a8d548821445f3797f221"},

		{name: "case-insensitive", answers: []string{"<15000", "SI"}, want: "66151d0bcc0535e96a0e7aed"},
		{name: "case-insensitive bracket", answers: []string{"ESTUDIANTE"}, want: "661a8d548821445f3797f221"},
		{name: "leaf stops the walk", answers: []string{"<15000", "si", "no", "lol"}, want: "66151d0bcc0535e96a0e7aed"},
		{name: "unknown answer", answers: []string{"<15000", "maybe"}, want: SentinelNoMatch},
		{name: "unknown bracket", answers: []string{"lol"}, want: SentinelNoMatch},
		{name: "empty answer", answers: []string{"<15000", ""}, want: SentinelNoMatch},
		{name: "no answers", answers: []string{}, want: SentinelExhausted},
		{name: "answers run out", answers: []string{"15000-25000", "no"}, want: SentinelExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Walk(Tree(), tt.answers).String())
		})
	}
}

func TestWalk_degenerateNode(t *testing.T) {
	root := question("q1",
		opt(Yes, "", question("q2",
			opt(Yes, "", &Node{}),
			opt(No, "", leaf("b")),
		)),
	)

	// the empty node swallows an answer without moving
	assert.Equal(t, "b", Walk(root, []string{"si", "si", "no"}).String())
	assert.Equal(t, SentinelExhausted, Walk(root, []string{"si", "si"}).String())
	assert.Equal(t, SentinelNoMatch, Walk(root, []string{"si", "si", "lol"}).String())
}

func answersWith(values map[int]string) []string {
	answers := make([]string, 14)
	for i := range answers {
		answers[i] = "x"
	}
	for i, v := range values {
		answers[i] = v
	}
	return answers
}

func TestSelectAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    []string
	}{
		{
			name:    "<15000",
			answers: answersWith(map[int]string{IncomeIndex: "<15000", 13: "n"}),
			want:    []string{"<15000", "n"},
		},
		{
			name:    "15000-25000",
			answers: answersWith(map[int]string{IncomeIndex: "15000-25000", 6: "h", 13: "n"}),
			want:    []string{"15000-25000", "h", "n"},
		},
		{
			name:    "25000-40000",
			answers: answersWith(map[int]string{IncomeIndex: "25000-40000", 6: "h", 13: "n", 5: "e"}),
			want:    []string{"25000-40000", "h", "n", "e"},
		},
		{
			name:    "40000-75000",
			answers: answersWith(map[int]string{IncomeIndex: "40000-75000", 6: "h", 10: "t", 5: "e"}),
			want:    []string{"40000-75000", "h", "t", "e"},
		},
		{
			name:    ">75000 house",
			answers: answersWith(map[int]string{IncomeIndex: ">75000", 6: "si", 5: "e"}),
			want:    []string{">75000", "si", "e"},
		},
		{
			name:    ">75000 flat, sport",
			answers: answersWith(map[int]string{IncomeIndex: ">75000", 6: "no", 0: "si", 2: "p"}),
			want:    []string{">75000", "no", "si", "p"},
		},
		{
			name:    ">75000 flat, no sport",
			answers: answersWith(map[int]string{IncomeIndex: ">75000", 6: "no", 0: "no", 13: "n"}),
			want:    []string{">75000", "no", "no", "n"},
		},
		{
			name:    ">75000 uppercase SI is not a house",
			answers: answersWith(map[int]string{IncomeIndex: ">75000", 6: "SI", 0: "no", 13: "n"}),
			want:    []string{">75000", "SI", "no", "n"},
		},
		{
			name:    "estudiante",
			answers: answersWith(map[int]string{IncomeIndex: "estudiante"}),
			want:    []string{"estudiante"},
		},
		{name: "unknown bracket", answers: answersWith(map[int]string{IncomeIndex: "lol"}), want: []string{}},
		{name: "bracket is case-sensitive", answers: answersWith(map[int]string{IncomeIndex: "ESTUDIANTE"}), want: []string{}},
		{name: "too short for income", answers: []string{"si", "no"}, want: []string{}},
		{name: "too short for answers", answers: []string{0: "", IncomeIndex: "<15000"}, want: []string{"<15000", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectAnswers(tt.answers))
		})
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    Result
	}{
		{
			name:    "<15000 si",
			answers: answersWith(map[int]string{IncomeIndex: "<15000", 13: "si"}),
			want:    Result{Neighborhood: "66151d0bcc0535e96a0e7aed"},
		},
		{
			name:    ">75000 no si si",
			answers: answersWith(map[int]string{IncomeIndex: ">75000", 6: "no", 0: "si", 2: "si"}),
			want:    Result{Neighborhood: "66151d0acc0535e96a0e7ad5"},
		},
		{
			name:    "estudiante",
			answers: answersWith(map[int]string{IncomeIndex: "estudiante"}),
			want:    Result{Neighborhood: "661a8d548821445f3797f221"},
		},
		{
			name:    "unknown bracket",
			answers: answersWith(map[int]string{IncomeIndex: "lol"}),
			want:    Result{Outcome: OutcomeExhausted},
		},
		{
			name:    "unknown answer",
			answers: answersWith(map[int]string{IncomeIndex: "<15000", 13: "maybe"}),
			want:    Result{Outcome: OutcomeNoMatch},
		},
		{
			name:    "40000-75000 flat answers entertainment with the transit answer",
			answers: answersWith(map[int]string{IncomeIndex: "40000-75000", 6: "No", 10: "SI", 5: "no"}),
			want:    Result{Neighborhood: "66151d0bcc0535e96a0e7add"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.answers)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Recommend(tt.answers), "not idempotent")
			assert.Equal(t, tt.want.Determined(), got.Determined())
		})
	}
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "abc", Result{Neighborhood: "abc"}.String())
	assert.Equal(t, "No se pudo determinar una recomendación.", Result{Outcome: OutcomeNoMatch}.String())
	assert.Equal(t, "No se pudo determinar una recomendación de barrio.", Result{Outcome: OutcomeExhausted}.String())
	assert.Equal(t, "exhausted", OutcomeExhausted.String())
}

func TestService_Recommend(t *testing.T) {
	svc := NewService(nil)

	determined := recommendationsTotal.WithLabelValues(OutcomeDetermined.String())
	exhausted := recommendationsTotal.WithLabelValues(OutcomeExhausted.String())
	beforeDetermined, beforeExhausted := testutil.ToFloat64(determined), testutil.ToFloat64(exhausted)

	res := svc.Recommend(answersWith(map[int]string{IncomeIndex: IncomeStudent}))
	assert.Equal(t, Result{Neighborhood: "661a8d548821445f3797f221"}, res)
	res = svc.Recommend(answersWith(map[int]string{IncomeIndex: "lol"}))
	assert.Equal(t, Result{Outcome: OutcomeExhausted}, res)

	assert.Equal(t, beforeDetermined+1, testutil.ToFloat64(determined))
	assert.Equal(t, beforeExhausted+1, testutil.ToFloat64(exhausted))
}
