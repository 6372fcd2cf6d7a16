package docmodel

// Label is a key into a locale's label table.
type Label string

const (
	LabelTableOfContents    Label = "tableOfContents"
	LabelGeneratedOn        Label = "generatedOn"
	LabelPrintNotice        Label = "printNotice"
	LabelComponents         Label = "components"
	LabelUIComponents       Label = "uiComponents"
	LabelSharedComponents   Label = "sharedComponents"
	LabelLayoutComponents   Label = "layoutComponents"
	LabelPageComponents     Label = "pageComponents"
	LabelOtherComponents    Label = "otherComponents"
	LabelProps              Label = "props"
	LabelNoProps            Label = "noProps"
	LabelHooks              Label = "hooks"
	LabelRequired           Label = "required"
	LabelOptional           Label = "optional"
	LabelName               Label = "name"
	LabelType               Label = "type"
	LabelStatus             Label = "status"
	LabelDescription        Label = "description"
	LabelParameters         Label = "parameters"
	LabelTypes              Label = "types"
	LabelInterfaces         Label = "interfaces"
	LabelTypeAliases        Label = "typeAliases"
	LabelEnums              Label = "enums"
	LabelConstants          Label = "constants"
	LabelProperties         Label = "properties"
	LabelDefinition         Label = "definition"
	LabelArchitecture       Label = "architecture"
	LabelTechStack          Label = "techStack"
	LabelDirectoryStructure Label = "directoryStructure"
	LabelRouting            Label = "routing"
	LabelStateManagement    Label = "stateManagement"
	LabelState              Label = "state"
	LabelActions            Label = "actions"
	LabelPersistence        Label = "persistence"
	LabelDeveloperGuide     Label = "developerGuide"
	LabelSetup              Label = "setup"
	LabelConventions        Label = "conventions"
	LabelOverview           Label = "overview"
)

// Labeler resolves label keys for one output language.
type Labeler interface {
	Label(key Label) string
}

// CategoryLabel returns the section label of a component category.
func CategoryLabel(c Category) Label {
	switch c {
	case CategoryUI:
		return LabelUIComponents
	case CategoryShared:
		return LabelSharedComponents
	case CategoryLayout:
		return LabelLayoutComponents
	case CategoryPage:
		return LabelPageComponents
	default:
		return LabelOtherComponents
	}
}

// KindLabel returns the section label of a type kind.
func KindLabel(k TypeKind) Label {
	switch k {
	case KindInterface:
		return LabelInterfaces
	case KindAlias:
		return LabelTypeAliases
	case KindEnum:
		return LabelEnums
	default:
		return LabelConstants
	}
}
