package catalog

// IdentifierType 书号类型(单个数字存储)
type IdentifierType int8

const (
	IdentifierISBN10 IdentifierType = iota
	IdentifierISBN13
	IdentifierISSN
	IdentifierOther
)

var identifierTypeNames = map[IdentifierType]string{
	IdentifierISBN10: "ISBN-10",
	IdentifierISBN13: "ISBN-13",
	IdentifierISSN:   "ISSN",
	IdentifierOther:  "OTHER",
}

func (t IdentifierType) String() string {
	if name, ok := identifierTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Identifier 书号(ISBN等)
// 与图书一对一，外键在图书一侧；读取时Book为拥有它的图书(可能为空)
type Identifier struct {
	ID    uint
	Type  IdentifierType
	Value string
	Book  *Book
}

// NewIdentifier 创建书号
func NewIdentifier(t IdentifierType, value string) *Identifier {
	return &Identifier{Type: t, Value: value}
}
