package lexer

// Cursor представляет собой позицию в строке исходника
type Cursor struct {
	Text string
	Off  int
}

// NewCursor creates a cursor at the start of text.
func NewCursor(text string) Cursor {
	return Cursor{Text: text}
}

// EOF проверяет, достигнут ли конец строки
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Text)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Text[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Text) {
		return 0, 0, false
	}
	return c.Text[c.Off], c.Text[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Text[c.Off]
	c.Off++
	return b
}

// Eat2 consumes the next two bytes if they are b0 b1.
func (c *Cursor) Eat2(b0, b1 byte) bool {
	x, y, ok := c.Peek2()
	if ok && x == b0 && y == b1 {
		c.Off += 2
		return true
	}
	return false
}

// Column returns the 1-based byte column of the cursor.
func (c *Cursor) Column() int {
	return c.Off + 1
}
