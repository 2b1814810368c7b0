package expr

import "strconv"

// Symbol names a fixed identifier used in generated trajectory programs.
type Symbol int

const (
	SymQ0 Symbol = iota
	SymQ
	SymStartState
	SymGoalState
	SymLBounds
	SymUBounds
	SymAE
	SymBE
	SymAI
	SymBI
	SymCostFunction
	SymNonLinConstraintFunction
	SymOptimSet
	SymFminCon
	SymOptions
	SymJ
	SymJGrad
	SymCi
	SymCe
	SymCiGrad
	SymCeGrad
	symbolCount
)

// symbolNames is resolved at compile time; Symbol.String never reflects.
var symbolNames = [symbolCount]string{
	SymQ0:                       "Q0",
	SymQ:                        "Q",
	SymStartState:               "qs",
	SymGoalState:                "qg",
	SymLBounds:                  "lBounds",
	SymUBounds:                  "uBounds",
	SymAE:                       "AE",
	SymBE:                       "bE",
	SymAI:                       "AI",
	SymBI:                       "bI",
	SymCostFunction:             "objFun",
	SymNonLinConstraintFunction: "nonLinConstraintFun",
	SymOptimSet:                 "optimset",
	SymFminCon:                  "fmincon",
	SymOptions:                  "options",
	SymJ:                        "J",
	SymJGrad:                    "JGrad",
	SymCi:                       "ci",
	SymCe:                       "ce",
	SymCiGrad:                   "ciGrad",
	SymCeGrad:                   "ceGrad",
}

func (s Symbol) String() string {
	if s < 0 || s >= symbolCount {
		return "symbol(" + strconv.Itoa(int(s)) + ")"
	}
	return symbolNames[s]
}

// Sym wraps a symbol as a literal expression.
func Sym(s Symbol) Expr {
	return Code(s.String())
}

// Keyword is a reserved word of the target language.
type Keyword int

const (
	KwIf Keyword = iota
	KwElse
	KwEnd
	KwFunction
	KwNargout
	KwInf
	KwNegInf
	keywordCount
)

var keywordNames = [keywordCount]string{
	KwIf:       "if",
	KwElse:     "else",
	KwEnd:      "end",
	KwFunction: "function",
	KwNargout:  "nargout",
	KwInf:      "Inf",
	KwNegInf:   "-Inf",
}

func (k Keyword) String() string {
	if k < 0 || k >= keywordCount {
		return "keyword(" + strconv.Itoa(int(k)) + ")"
	}
	return keywordNames[k]
}
