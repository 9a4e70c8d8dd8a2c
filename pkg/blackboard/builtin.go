package blackboard

// Built-in type catalog
//
// Every case starts with a standard set of artifact and attribute types so
// modules can post common findings without registering anything first.
// Custom types registered at runtime via GetOrAddArtifactType and
// GetOrAddAttributeType live alongside these in the same registries.

// Standard artifact type names.
const (
	TypeWebHistory      = "TSK_WEB_HISTORY"
	TypeWebBookmark     = "TSK_WEB_BOOKMARK"
	TypeWebDownload     = "TSK_WEB_DOWNLOAD"
	TypeKeywordHit      = "TSK_KEYWORD_HIT"
	TypeHashsetHit      = "TSK_HASHSET_HIT"
	TypeInstalledProg   = "TSK_INSTALLED_PROG"
	TypeRecentObject    = "TSK_RECENT_OBJECT"
	TypeEmailMsg        = "TSK_EMAIL_MSG"
	TypeDeviceAttached  = "TSK_DEVICE_ATTACHED"
	TypeExtractedText   = "TSK_EXTRACTED_TEXT"
	TypeInterestingItem = "TSK_INTERESTING_ITEM"
)

// Standard attribute type names.
const (
	AttrURL              = "TSK_URL"
	AttrDomain           = "TSK_DOMAIN"
	AttrName             = "TSK_NAME"
	AttrTitle            = "TSK_TITLE"
	AttrPath             = "TSK_PATH"
	AttrProgName         = "TSK_PROG_NAME"
	AttrKeyword          = "TSK_KEYWORD"
	AttrSetName          = "TSK_SET_NAME"
	AttrComment          = "TSK_COMMENT"
	AttrCount            = "TSK_COUNT"
	AttrDeviceID         = "TSK_DEVICE_ID"
	AttrText             = "TSK_TEXT"
	AttrDateTime         = "TSK_DATETIME"
	AttrDateTimeAccessed = "TSK_DATETIME_ACCESSED"
	AttrDateTimeCreated  = "TSK_DATETIME_CREATED"
	AttrDateTimeModified = "TSK_DATETIME_MODIFIED"
	AttrDateTimeSent     = "TSK_DATETIME_SENT"
	AttrDateTimeRcvd     = "TSK_DATETIME_RCVD"
)

// BuiltinArtifactTypes returns the standard artifact type descriptors.
// The returned slice is freshly allocated on every call.
func BuiltinArtifactTypes() []ArtifactType {
	return []ArtifactType{
		{Name: TypeWebHistory, DisplayName: "Web History"},
		{Name: TypeWebBookmark, DisplayName: "Web Bookmark"},
		{Name: TypeWebDownload, DisplayName: "Web Download"},
		{Name: TypeKeywordHit, DisplayName: "Keyword Hit"},
		{Name: TypeHashsetHit, DisplayName: "Hashset Hit"},
		{Name: TypeInstalledProg, DisplayName: "Installed Program"},
		{Name: TypeRecentObject, DisplayName: "Recent Document"},
		{Name: TypeEmailMsg, DisplayName: "Email Message"},
		{Name: TypeDeviceAttached, DisplayName: "Device Attached"},
		{Name: TypeExtractedText, DisplayName: "Extracted Text"},
		{Name: TypeInterestingItem, DisplayName: "Interesting Item"},
	}
}

// BuiltinAttributeTypes returns the standard attribute type descriptors.
// The returned slice is freshly allocated on every call.
func BuiltinAttributeTypes() []AttributeType {
	return []AttributeType{
		{Name: AttrURL, ValueType: ValueTypeString, DisplayName: "URL"},
		{Name: AttrDomain, ValueType: ValueTypeString, DisplayName: "Domain"},
		{Name: AttrName, ValueType: ValueTypeString, DisplayName: "Name"},
		{Name: AttrTitle, ValueType: ValueTypeString, DisplayName: "Title"},
		{Name: AttrPath, ValueType: ValueTypeString, DisplayName: "Path"},
		{Name: AttrProgName, ValueType: ValueTypeString, DisplayName: "Program Name"},
		{Name: AttrKeyword, ValueType: ValueTypeString, DisplayName: "Keyword"},
		{Name: AttrSetName, ValueType: ValueTypeString, DisplayName: "Set Name"},
		{Name: AttrComment, ValueType: ValueTypeString, DisplayName: "Comment"},
		{Name: AttrCount, ValueType: ValueTypeInt32, DisplayName: "Count"},
		{Name: AttrDeviceID, ValueType: ValueTypeString, DisplayName: "Device ID"},
		{Name: AttrText, ValueType: ValueTypeString, DisplayName: "Text"},
		{Name: AttrDateTime, ValueType: ValueTypeDateTime, DisplayName: "Date/Time"},
		{Name: AttrDateTimeAccessed, ValueType: ValueTypeDateTime, DisplayName: "Date Accessed"},
		{Name: AttrDateTimeCreated, ValueType: ValueTypeDateTime, DisplayName: "Date Created"},
		{Name: AttrDateTimeModified, ValueType: ValueTypeDateTime, DisplayName: "Date Modified"},
		{Name: AttrDateTimeSent, ValueType: ValueTypeDateTime, DisplayName: "Date Sent"},
		{Name: AttrDateTimeRcvd, ValueType: ValueTypeDateTime, DisplayName: "Date Received"},
	}
}
