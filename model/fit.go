package model

import (
	"math"
	"sort"
	"strings"
)

// FitTFIDF 在一批文档上拟合 TF-IDF 转换器。
// 词表按字典序分配列号，保证同一批文档拟合结果确定；
// IDF 采用平滑形式 ln((1+n)/(1+df)) + 1，不会出现零权重。
func FitTFIDF(docs []string) *TFIDF {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range strings.Fields(strings.ToLower(doc)) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	t := &TFIDF{
		Vocab: make(map[string]int, len(terms)),
		IDF:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for col, term := range terms {
		t.Vocab[term] = col
		t.IDF[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return t
}
