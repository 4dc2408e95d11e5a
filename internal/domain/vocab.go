package domain

import (
	"fmt"
	"strconv"
)

// DefaultTransformNames are the text perturbations known to the augmenter,
// in bit-vector order
var DefaultTransformNames = []string{
	"AddNeutralEmoji",
	"ChangeHypernym",
	"ChangeHyponym",
	"ChangeLocation",
	"ChangeName",
	"ChangeNumber",
	"ChangeSynonym",
	"ContractContractions",
	"ExpandContractions",
	"HomoglyphSwap",
	"InsertPunctuationMarks",
	"RandomCharDel",
	"RandomCharInsert",
	"RandomCharSubst",
	"RandomCharSwap",
	"RandomInsertion",
	"RandomSwap",
	"RandomSwapQwerty",
	"RemoveNeutralEmoji",
	"WordDeletion",
}

// DefaultLabelNames maps numeric class labels of the binary sentiment sets
var DefaultLabelNames = []string{"neg", "pos"}

// Vocabulary names the positions of the bit-vectors and the class labels
type Vocabulary struct {
	Transforms []string `yaml:"transforms"`
	Features   []string `yaml:"features"`
	Labels     []string `yaml:"labels"`
}

// DefaultVocabulary returns the built-in names
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Transforms: DefaultTransformNames,
		Labels:     DefaultLabelNames,
	}
}

// Name returns the category name in ns, or a positional placeholder
func (v Vocabulary) Name(ns Namespace, index int) string {
	names := v.Features
	if ns == NamespaceTransform {
		names = v.Transforms
	}
	if index >= 0 && index < len(names) {
		return names[index]
	}
	return fmt.Sprintf("%s #%d", ns, index)
}

// LabelName maps a numeric label to its name; other values pass through
func (v Vocabulary) LabelName(raw string) string {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	if n >= 0 && n < len(v.Labels) {
		return v.Labels[n]
	}
	return raw
}
