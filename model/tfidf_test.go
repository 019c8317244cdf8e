package model

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFitTFIDF(t *testing.T) {
	tf := FitTFIDF([]string{"python ml", "python web"})

	// 词表按字典序分配列号
	wantVocab := map[string]int{"ml": 0, "python": 1, "web": 2}
	for term, col := range wantVocab {
		if got := tf.Vocab[term]; got != col {
			t.Errorf("vocab[%q] = %d, want %d", term, got, col)
		}
	}
	if tf.Dim() != 3 {
		t.Errorf("dim = %d, want 3", tf.Dim())
	}

	// 平滑 IDF：出现在所有文档的词项仍为 1，不会归零
	if !approx(tf.IDF[wantVocab["python"]], 1) {
		t.Errorf("idf(python) = %v, want 1", tf.IDF[wantVocab["python"]])
	}
	wantRare := math.Log(3.0/2.0) + 1
	if !approx(tf.IDF[wantVocab["ml"]], wantRare) {
		t.Errorf("idf(ml) = %v, want %v", tf.IDF[wantVocab["ml"]], wantRare)
	}
}

func TestEmbedProfile(t *testing.T) {
	tf := FitTFIDF([]string{"python ml", "python web"})

	t.Run("single known token hits its column", func(t *testing.T) {
		vec := tf.EmbedProfile("python")
		col := tf.Vocab["python"]
		if !approx(vec[col], 1) {
			t.Errorf("vec[python] = %v, want 1 after normalization", vec[col])
		}
	})

	t.Run("unknown tokens embed to zero vector", func(t *testing.T) {
		vec := tf.EmbedProfile("quantum chemistry")
		for i, x := range vec {
			if x != 0 {
				t.Errorf("vec[%d] = %v, want 0", i, x)
			}
		}
	})

	t.Run("tokenization is case-insensitive", func(t *testing.T) {
		a := tf.EmbedProfile("Python ML")
		b := tf.EmbedProfile("python ml")
		for i := range a {
			if !approx(a[i], b[i]) {
				t.Fatalf("case sensitivity at col %d: %v != %v", i, a[i], b[i])
			}
		}
	})

	t.Run("output is l2 normalized", func(t *testing.T) {
		vec := tf.EmbedProfile("python ml web")
		var sum float64
		for _, x := range vec {
			sum += x * x
		}
		if !approx(sum, 1) {
			t.Errorf("squared norm = %v, want 1", sum)
		}
	})
}

func TestEmbedItems(t *testing.T) {
	tf := FitTFIDF([]string{"python ml", "python web"})
	rows := tf.EmbedItems([]string{"python ml", ""})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rows[0]) != tf.Dim() || len(rows[1]) != tf.Dim() {
		t.Error("row dims mismatch")
	}
	for _, x := range rows[1] {
		if x != 0 {
			t.Error("empty text must embed to zero vector")
		}
	}
}

func TestFitTFIDFDeterministic(t *testing.T) {
	docs := []string{"a b c", "b c d", "c d e"}
	first := FitTFIDF(docs)
	for i := 0; i < 5; i++ {
		again := FitTFIDF(docs)
		for term, col := range first.Vocab {
			if again.Vocab[term] != col {
				t.Fatalf("vocab order unstable for %q", term)
			}
		}
		for col := range first.IDF {
			if !approx(first.IDF[col], again.IDF[col]) {
				t.Fatalf("idf unstable at col %d", col)
			}
		}
	}
}
