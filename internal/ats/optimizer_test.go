package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptimizeForATS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "去除特殊字符并转小写",
			input: "Senior Engineer (Remote), C++/Go",
			want:  "senior engineer remote cgo",
		},
		{
			name:  "词边界展开缩写",
			input: "JS and TS with AWS",
			want:  "javascript and typescript with amazon web services",
		},
		{
			name:  "缩写只在独立token时展开",
			input: "reactjs island maildb",
			want:  "reactjs island maildb",
		},
		{
			name:  "框架名追加js后缀",
			input: "react vue",
			want:  "reactjs vuejs",
		},
		{
			name:  "空输入",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptimizeForATS(tt.input))
		})
	}
}

func TestOptimizeForATS_Idempotent(t *testing.T) {
	inputs := []string{
		"Built UI with React, JS & TS; deployed on AWS (CI/CD).",
		"ml ai qa seo db api oop",
		"already plain lowercase text",
	}
	for _, input := range inputs {
		once := OptimizeForATS(input)
		assert.Equal(t, once, OptimizeForATS(once), "输入: %q", input)
	}
}
