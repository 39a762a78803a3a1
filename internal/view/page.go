package view

import "fmt"

// Shop name shown in the header.
const Brand = "WEB-ларёк"

// PageProps drives the page shell.
type PageProps struct {
	Counter int
	Gallery Block

	// Locked dims the page while a modal is open.
	Locked bool

	// Status is an optional message shown below the gallery.
	Status string
}

// Page renders the header and the gallery.
func Page(p PageProps) Block {
	out := Block{
		styled(fmt.Sprintf("%s    Корзина [%d]", Brand, p.Counter), StyleTitle),
		text(""),
	}
	out = append(out, p.Gallery...)
	if p.Locked {
		out = out.Dim()
	}
	if p.Status != "" {
		out = append(out, text(""), styled(p.Status, StyleTitle))
	}
	return out
}

// ModalProps drives the modal container.
type ModalProps struct {
	Content Block

	// Status is an optional message shown below the content.
	Status string
}

// Modal renders modal content with a close hint below it.
func Modal(p ModalProps) Block {
	out := append(Block{}, p.Content...)
	if p.Status != "" {
		out = append(out, text(""), styled(p.Status, StyleTitle))
	}
	return append(out, text(""), styled("Esc: закрыть", StyleMuted))
}
