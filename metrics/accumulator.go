package metrics

// Counts は二グループの蓄積カウンタのスナップショット
// 分母が縮退していないか（グループのサンプル数が0でないか）を
// 呼び出し側が検査できるように公開している
type Counts struct {
	// PosAdvantaged は陽性と予測された優遇グループのサンプル数
	PosAdvantaged int64

	// PosDisadvantaged は陽性と予測された非優遇グループのサンプル数
	PosDisadvantaged int64

	// NumAdvantaged は優遇グループの総サンプル数
	NumAdvantaged int64

	// NumDisadvantaged は非優遇グループの総サンプル数
	NumDisadvantaged int64
}

// groupCounts はSPD/EODが共有する4カウンタの蓄積状態
// マージは整数ベクトルの加算（結合的・可換的）であり、
// 分散評価のシャード間リダクションにそのまま使える
type groupCounts struct {
	posAdv int64
	posDis int64
	numAdv int64
	numDis int64
}

// add は1サンプルをマスクに従って振り分ける
func (c *groupCounts) add(pred float64, advantaged bool) {
	if advantaged {
		c.numAdv++
		if pred == 1 {
			c.posAdv++
		}
	} else {
		c.numDis++
		if pred == 1 {
			c.posDis++
		}
	}
}

// merge はカウンタ同士を加算する
func (c *groupCounts) merge(other groupCounts) {
	c.posAdv += other.posAdv
	c.posDis += other.posDis
	c.numAdv += other.numAdv
	c.numDis += other.numDis
}

// reset はカウンタをすべて0に戻す
func (c *groupCounts) reset() {
	*c = groupCounts{}
}

// snapshot は公開用のCounts値を返す
func (c *groupCounts) snapshot() Counts {
	return Counts{
		PosAdvantaged:    c.posAdv,
		PosDisadvantaged: c.posDis,
		NumAdvantaged:    c.numAdv,
		NumDisadvantaged: c.numDis,
	}
}

// ratioDifference は |pos/max(num,1) の差| を計算する
// グループが空の場合は分母を1として確率0と定義する（エラーにはしない）
func (c *groupCounts) ratioDifference() float64 {
	pAdv := float64(c.posAdv) / float64(maxInt64(c.numAdv, 1))
	pDis := float64(c.posDis) / float64(maxInt64(c.numDis, 1))

	diff := pAdv - pDis
	if diff < 0 {
		diff = -diff
	}
	return diff
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
