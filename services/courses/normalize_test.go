package courses

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCourseID(t *testing.T) {
	accepted := []struct {
		in      string
		subject string
		number  string
	}{
		{"CS3414", "CS", "3414"},
		{"cs 3414", "CS", "3414"},
		{"MATH-2534", "MATH", "2534"},
		{"stat:4705", "STAT", "4705"},
		{"  ECE2014  ", "ECE", "2014"},
	}
	for _, c := range accepted {
		subject, number, err := ParseCourseID(c.in)
		require.Nil(t, err, c.in)
		require.Equal(t, c.subject, subject, c.in)
		require.Equal(t, c.number, number, c.in)
	}

	rejected := []string{
		"",
		"C3414",
		"ABCDE1234",
		"CS341",
		"CS34145",
		"3414CS",
		"CS-34A4",
		"CS 3414 H",
	}
	for _, in := range rejected {
		_, _, err := ParseCourseID(in)
		require.NotNil(t, err, in)
	}
}

func TestNormalizeCredits(t *testing.T) {
	cases := []struct {
		in  string
		out []int
	}{
		{"3", []int{3}},
		{"1-3", []int{1, 3}},
		{"1 to 3", []int{1, 3}},
		{"1.0", []int{1}},
		{"1 credit", []int{1}},
		{"3 credits", []int{3}},
		{"4 cr", []int{4}},
		{"garbage", nil},
		{"", nil},
		{"three", nil},
	}
	for _, c := range cases {
		require.Equal(t, c.out, NormalizeCredits(c.in), c.in)
	}
}

func TestCleanLeadingDash(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"- Intro to CS", "Intro to CS"},
		{"— — Data Structures", "Data Structures"},
		{"Self-Paced Study", "Self-Paced Study"},
		{"– Topics – Advanced", "Topics – Advanced"},
		{"   Plain Title  ", "Plain Title"},
		{"---", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.out, CleanLeadingDash(c.in), c.in)
	}
}

func TestExtractCourseCodes(t *testing.T) {
	codes := ExtractCourseCodes("CS 2114 and (MATH 2534 or MATH 3034)")
	require.Equal(t, []string{"CS2114", "MATH2534", "MATH3034"}, codes)

	// separator variants normalize to one code
	codes = ExtractCourseCodes("CS 2114 or CS-2114 or cs:2114")
	require.Equal(t, []string{"CS2114"}, codes)

	require.Nil(t, ExtractCourseCodes("No prerequisites found."))
}

func TestPrerequisitesMarshalJSON(t *testing.T) {
	cases := []struct {
		in  Prerequisites
		out string
	}{
		{Prerequisites{Groups: [][]string{{"CS2114", "CS2505"}, {"MATH2534"}}}, `[["CS2114","CS2505"],["MATH2534"]]`},
		{Prerequisites{Flat: []string{"CS2114"}}, `["CS2114"]`},
		{Prerequisites{}, `[]`},
	}
	for _, c := range cases {
		data, err := json.Marshal(c.in)
		require.Nil(t, err)
		require.Equal(t, c.out, string(data))
	}
}

func TestPrerequisitesUnmarshalJSON(t *testing.T) {
	var p Prerequisites
	require.Nil(t, json.Unmarshal([]byte(`[["CS2114"],["MATH2534"]]`), &p))
	require.Equal(t, [][]string{{"CS2114"}, {"MATH2534"}}, p.Groups)

	require.Nil(t, json.Unmarshal([]byte(`["CS2114","MATH2534"]`), &p))
	require.Equal(t, []string{"CS2114", "MATH2534"}, p.Flat)
	require.Empty(t, p.Groups)
}

func TestPathwaysFromString(t *testing.T) {
	require.Equal(t, []string{"AR01", "G02", "AR03"}, PathwaysFromString("AR01, G02 ,AR03"))
	require.Nil(t, PathwaysFromString(""))
	require.Nil(t, PathwaysFromString(" , ,"))
}

func TestCategoryFor(t *testing.T) {
	require.Equal(t, "MATH", categoryFor("MATH", "MATH2534"))
	require.Equal(t, "STAT", categoryFor("", "STAT4705"))
	require.Equal(t, "CS", categoryFor("", ""))
}
