package editor

import "github.com/khoahotran/portfolio-cms/internal/domain/portfolio"

const messageResource = "Message"

// AddMessage puts m at the front of the inbox, newest first.
func AddMessage(doc *portfolio.Document, m portfolio.VisitorMessage) (*portfolio.Document, error) {
	list, err := insertItem(portfolio.SectionMessages, doc.Messages, m, nil, true)
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionMessages, list)
}

func ToggleMessageRead(doc *portfolio.Document, id string) (*portfolio.Document, error) {
	return editMessage(doc, id, func(m portfolio.VisitorMessage) portfolio.VisitorMessage {
		m.IsRead = !m.IsRead
		return m
	})
}

func MarkMessageRead(doc *portfolio.Document, id string, read bool) (*portfolio.Document, error) {
	return editMessage(doc, id, func(m portfolio.VisitorMessage) portfolio.VisitorMessage {
		m.IsRead = read
		return m
	})
}

func DeleteMessage(doc *portfolio.Document, id string) (*portfolio.Document, error) {
	return setSection(doc, portfolio.SectionMessages, deleteByID(doc.Messages, id))
}

func editMessage(doc *portfolio.Document, id string, fn func(portfolio.VisitorMessage) portfolio.VisitorMessage) (*portfolio.Document, error) {
	list, err := replaceByID(doc.Messages, id, messageResource, func(m portfolio.VisitorMessage) (portfolio.VisitorMessage, error) {
		return fn(m), nil
	})
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionMessages, list)
}
