package dashboard

import (
	"tabtime/internal/memo"
	"tabtime/internal/todo"
)

func (d *Dashboard) Todos() []todo.Item {
	return d.todos.Items()
}

func (d *Dashboard) AddTodo(text string) (todo.Item, error) {
	it, err := d.todos.Add(text, d.now())
	if err != nil {
		return todo.Item{}, wrap("add todo", err)
	}
	d.saveTodos()
	return it, nil
}

func (d *Dashboard) ToggleTodo(id string) error {
	if _, err := d.todos.Toggle(id); err != nil {
		return wrap("toggle todo", err)
	}
	d.saveTodos()
	return nil
}

func (d *Dashboard) RemoveTodo(id string) error {
	if err := d.todos.Remove(id); err != nil {
		return wrap("remove todo", err)
	}
	d.saveTodos()
	return nil
}

func (d *Dashboard) ClearDoneTodos() int {
	n := d.todos.ClearDone()
	if n > 0 {
		d.saveTodos()
	}
	return n
}

func (d *Dashboard) Memos() []memo.Memo {
	return d.memos.Memos()
}

func (d *Dashboard) PinnedMemo() (memo.Memo, bool) {
	return d.memos.Pinned()
}

func (d *Dashboard) NewMemo() memo.Memo {
	m := d.memos.New(d.now())
	d.saveMemos()
	return m
}

func (d *Dashboard) SetMemoContent(id, content string) error {
	if err := d.memos.SetContent(id, content); err != nil {
		return wrap("edit memo", err)
	}
	d.saveMemos()
	return nil
}

func (d *Dashboard) PinMemo(id string, pinned bool) error {
	if err := d.memos.Pin(id, pinned); err != nil {
		return wrap("pin memo", err)
	}
	d.saveMemos()
	return nil
}

func (d *Dashboard) DeleteMemo(id string) error {
	if err := d.memos.Delete(id); err != nil {
		return wrap("delete memo", err)
	}
	d.saveMemos()
	return nil
}
