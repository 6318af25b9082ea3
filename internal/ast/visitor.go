package ast

// Visitor walks every node kind. The pretty printer is the main implementation.
type Visitor interface {
	VisitProgram(node *Program)
	VisitDataDeclaration(node *DataDeclaration)
	VisitLetStatement(node *LetStatement)
	VisitAssertStatement(node *AssertStatement)
	VisitPrintStatement(node *PrintStatement)
	VisitImportStatement(node *ImportStatement)
	VisitExpressionStatement(node *ExpressionStatement)

	VisitIdentifier(node *Identifier)
	VisitStringLiteral(node *StringLiteral)
	VisitTupleLiteral(node *TupleLiteral)
	VisitFunctionLiteral(node *FunctionLiteral)
	VisitCaseFunction(node *CaseFunction)
	VisitCallExpression(node *CallExpression)
	VisitExtractExpression(node *ExtractExpression)
	VisitIfExpression(node *IfExpression)
	VisitSupExpression(node *SupExpression)
	VisitPhaseFlipExpression(node *PhaseFlipExpression)
	VisitMeasureExpression(node *MeasureExpression)
	VisitInvertExpression(node *InvertExpression)
	VisitRepeatExpression(node *RepeatExpression)
	VisitAmplitudeExpression(node *AmplitudeExpression)
	VisitBlockExpression(node *BlockExpression)

	VisitWildcardPattern(node *WildcardPattern)
	VisitIdentifierPattern(node *IdentifierPattern)
	VisitConstructorPattern(node *ConstructorPattern)
	VisitTuplePattern(node *TuplePattern)
	VisitAlternativePattern(node *AlternativePattern)
	VisitPhasePattern(node *PhasePattern)
}
