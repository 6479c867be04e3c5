// Package metrics は二値分類器のグループ公平性メトリクスを提供する
//
// データセットはセンシティブ属性によって「優遇グループ」と「非優遇グループ」に
// 分割されているものとし、分割はブールマスクとして渡される。
// SPDとEODはどちらもストリーミング（逐次）蓄積型のメトリクスであり、
// バッチをまたいでUpdateを繰り返し呼び出せる。計算結果はバッチ境界に依存しない。
package metrics

import (
	"sync"

	"github.com/YuminosukeSato/fairgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SPD は統計的パリティ差（Statistical Parity Difference）を逐次計算する
//
//	SPD = |P(pred=1 | advantaged) - P(pred=1 | disadvantaged)|
type SPD struct {
	mu     sync.Mutex
	counts groupCounts
}

// NewSPD は新しいSPDアキュムレータを作成する
func NewSPD() *SPD {
	return &SPD{}
}

// Update は1バッチ分の予測値でカウンタを更新する
//
// preds の各要素は {0, 1} でなければならない。advMask は preds と同じ長さの
// ブールマスクで、trueのサンプルが優遇グループに属する。
// 空のバッチはエラーにならず、カウンタは変化しない。
func (m *SPD) Update(preds *mat.VecDense, advMask []bool) error {
	n := 0
	if preds != nil {
		n = preds.Len()
	}

	if len(advMask) != n {
		return errors.NewDimensionError("SPD.Update", n, len(advMask), 0)
	}

	if err := validateBinary("SPD.Update", "preds", preds); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < n; i++ {
		m.counts.add(preds.AtVec(i), advMask[i])
	}
	return nil
}

// Compute は蓄積されたカウンタからSPDを計算する
//
// 戻り値は [0, 1] に収まる。グループのサンプル数が0の場合、そのグループの
// 陽性率は0と定義される（分母は max(n, 1)）。更新履歴が同じであれば
// バッチの切り方に関係なく同じ値を返す。
func (m *SPD) Compute() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts.ratioDifference()
}

// Merge は別のSPDアキュムレータの状態をカウンタ加算で取り込む
// 加算は結合的かつ可換なので、シャードのマージ順序は結果に影響しない
func (m *SPD) Merge(other *SPD) {
	snap := other.Counts()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts.merge(groupCounts{
		posAdv: snap.PosAdvantaged,
		posDis: snap.PosDisadvantaged,
		numAdv: snap.NumAdvantaged,
		numDis: snap.NumDisadvantaged,
	})
}

// Reset はカウンタをすべて0に戻す
func (m *SPD) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts.reset()
}

// Counts は現在のカウンタのスナップショットを返す
func (m *SPD) Counts() Counts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts.snapshot()
}

// EOD は機会均等差（Equal Opportunity Difference）を逐次計算する
//
//	EOD = |P(pred=1 | advantaged, label=1) - P(pred=1 | disadvantaged, label=1)|
//
// SPDと同じ4カウンタ状態を持つが、正解ラベルが1のサンプルのみを集計する。
type EOD struct {
	mu     sync.Mutex
	counts groupCounts
}

// NewEOD は新しいEODアキュムレータを作成する
func NewEOD() *EOD {
	return &EOD{}
}

// Update は1バッチ分の予測値と正解ラベルでカウンタを更新する
//
// preds と targets の各要素は {0, 1} でなければならない。
// targets == 1 のサブセットのみが advMask によって分割・集計される。
// 空のバッチはエラーにならず、カウンタは変化しない。
func (m *EOD) Update(preds, targets *mat.VecDense, advMask []bool) error {
	n := 0
	if preds != nil {
		n = preds.Len()
	}

	tn := 0
	if targets != nil {
		tn = targets.Len()
	}
	if tn != n {
		return errors.NewDimensionError("EOD.Update", n, tn, 0)
	}
	if len(advMask) != n {
		return errors.NewDimensionError("EOD.Update", n, len(advMask), 0)
	}

	if err := validateBinary("EOD.Update", "preds", preds); err != nil {
		return err
	}
	if err := validateBinary("EOD.Update", "targets", targets); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < n; i++ {
		// 正解ラベルが1のサンプルに限定して集計する
		if targets.AtVec(i) != 1 {
			continue
		}
		m.counts.add(preds.AtVec(i), advMask[i])
	}
	return nil
}

// Compute は蓄積されたカウンタからEODを計算する
// エッジケースの扱いはSPD.Computeと同一（分母は max(n, 1)）
func (m *EOD) Compute() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts.ratioDifference()
}

// Merge は別のEODアキュムレータの状態をカウンタ加算で取り込む
func (m *EOD) Merge(other *EOD) {
	snap := other.Counts()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts.merge(groupCounts{
		posAdv: snap.PosAdvantaged,
		posDis: snap.PosDisadvantaged,
		numAdv: snap.NumAdvantaged,
		numDis: snap.NumDisadvantaged,
	})
}

// Reset はカウンタをすべて0に戻す
func (m *EOD) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts.reset()
}

// Counts は現在のカウンタのスナップショットを返す
func (m *EOD) Counts() Counts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts.snapshot()
}

// validateBinary はベクトルの全要素が {0, 1} であることを検証する
func validateBinary(op, name string, v *mat.VecDense) error {
	if v == nil {
		return nil
	}
	for i := 0; i < v.Len(); i++ {
		val := v.AtVec(i)
		if val != 0 && val != 1 {
			return errors.NewValueError(op, name+" must contain only binary values (0 or 1)")
		}
	}
	return nil
}
