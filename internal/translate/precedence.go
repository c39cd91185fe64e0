package translate

import "github.com/calumari/readex/internal/expr"

// Operator precedence, higher binds tighter.
const (
	precAssign = iota + 1
	precConditional
	precCoalesce
	precOrElse
	precAndAlso
	precOr
	precXor
	precAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPrimary
)

type binaryInfo struct {
	symbol string
	prec   int
	// assoc marks operators where a op (b op c) == (a op b) op c.
	assoc bool
}

var binaryOps = map[expr.BinaryOp]binaryInfo{
	expr.Add:                {"+", precAdditive, true},
	expr.AddChecked:         {"+", precAdditive, true},
	expr.Subtract:           {"-", precAdditive, false},
	expr.SubtractChecked:    {"-", precAdditive, false},
	expr.Multiply:           {"*", precMultiplicative, true},
	expr.MultiplyChecked:    {"*", precMultiplicative, true},
	expr.Divide:             {"/", precMultiplicative, false},
	expr.Modulo:             {"%", precMultiplicative, false},
	expr.And:                {"&", precAnd, true},
	expr.Or:                 {"|", precOr, true},
	expr.ExclusiveOr:        {"^", precXor, true},
	expr.AndAlso:            {"&&", precAndAlso, true},
	expr.OrElse:             {"||", precOrElse, true},
	expr.Equal:              {"==", precEquality, false},
	expr.NotEqual:           {"!=", precEquality, false},
	expr.LessThan:           {"<", precRelational, false},
	expr.LessThanOrEqual:    {"<=", precRelational, false},
	expr.GreaterThan:        {">", precRelational, false},
	expr.GreaterThanOrEqual: {">=", precRelational, false},
	expr.LeftShift:          {"<<", precShift, false},
	expr.RightShift:         {">>", precShift, false},
	expr.Coalesce:           {"??", precCoalesce, false},
}

var assignSymbols = map[expr.AssignOp]string{
	expr.AssignPlain:           "=",
	expr.AddAssign:             "+=",
	expr.AddAssignChecked:      "+=",
	expr.SubtractAssign:        "-=",
	expr.SubtractAssignChecked: "-=",
	expr.MultiplyAssign:        "*=",
	expr.MultiplyAssignChecked: "*=",
	expr.DivideAssign:          "/=",
	expr.ModuloAssign:          "%=",
	expr.AndAssign:             "&=",
	expr.OrAssign:              "|=",
	expr.ExclusiveOrAssign:     "^=",
	expr.LeftShiftAssign:       "<<=",
	expr.RightShiftAssign:      ">>=",
}
