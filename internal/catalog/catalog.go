package catalog

import "odbccrusher/internal/harness"

// Register adds every required probe category to reg in the order the
// conformance matrix defines them.
func Register(reg *harness.Registry) {
	reg.Register(ConnectionCategory{})
	reg.Register(StatementCategory{})
	reg.Register(MetadataCategory{})
	reg.Register(DataTypeCategory{})
	reg.Register(TransactionCategory{})
	reg.Register(AdvancedCategory{})
	reg.Register(BufferValidationCategory{})
	reg.Register(ErrorQueueCategory{})
	reg.Register(StateMachineCategory{})
	reg.Register(UnicodeCategory{})
	reg.Register(CatalogDepthCategory{})
	reg.Register(DiagnosticDepthCategory{})
	reg.Register(CursorBehaviorCategory{})
	reg.Register(ParamBindingCategory{})
	reg.Register(SQLStateCategory{})
	reg.Register(BoundaryCategory{})
	reg.Register(DataTypeEdgeCategory{})
	reg.Register(ArrayParamCategory{})
	reg.Register(NumericStructCategory{})
	reg.Register(EscapeSequenceCategory{})
	reg.Register(CursorStressCategory{})
	reg.Register(DescriptorCategory{})
	reg.Register(CancellationCategory{})
}
