package models

// Side как у стратегии входа: "BUY"/"SELL" или пустая строка.
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Verdict: результат одного rule-модуля за цикл.
// Fired=false значит, что снаружи ничего не видно. Message может быть пустым.
type Verdict struct {
	Fired        bool
	Message      string
	Insufficient bool // данных меньше минимального окна
}

func (v Verdict) HasMessage() bool { return v.Message != "" }

// NotEnoughData: стандартный ответ модуля на короткую серию.
func NotEnoughData() Verdict {
	return Verdict{Message: "Not enough data", Insufficient: true}
}

// DivergenceKind: тип RSI-дивергенции.
type DivergenceKind int

const (
	DivergenceNone    DivergenceKind = iota
	DivergenceBearish                // закрыть BUY
	DivergenceBullish                // закрыть SELL
)

func (k DivergenceKind) String() string {
	switch k {
	case DivergenceBearish:
		return "bearish"
	case DivergenceBullish:
		return "bullish"
	}
	return "none"
}
