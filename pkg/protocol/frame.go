package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"

	"bomberman/pkg/audio"
	"bomberman/pkg/core"
	"bomberman/pkg/phase"
)

// FrameMessage 服务器下发的一帧：阶段机画面 + 本帧音效
type FrameMessage struct {
	ID      uint32
	Frame   phase.Frame
	Effects []audio.Effect
	Music   audio.Cue
}

// NewFramePacket 构造帧消息
func NewFramePacket(msg FrameMessage) []byte {
	var e encoder
	e.uvarint(1, uint64(msg.ID))
	e.uvarint(2, uint64(msg.Frame.Phase))
	e.string(3, msg.Frame.Message)
	if mv := msg.Frame.Menu; mv != nil {
		e.message(4, func(e *encoder) {
			e.string(1, mv.Title)
			for _, item := range mv.Items {
				e.b = protowire.AppendTag(e.b, 2, protowire.BytesType)
				e.b = protowire.AppendString(e.b, item)
			}
			e.uvarint(3, uint64(mv.Selected))
		})
	}
	if gf := msg.Frame.Game; gf != nil {
		e.message(5, func(e *encoder) { encodeGame(e, gf) })
	}
	effects := make([]uint64, len(msg.Effects))
	for i, fx := range msg.Effects {
		effects[i] = uint64(fx)
	}
	e.packed(6, effects)
	e.uvarint(7, uint64(msg.Music))
	return MarshalPacket(Packet{Type: MessageFrame, Payload: e.b})
}

func encodePos(e *encoder, p core.GridPos) {
	e.sint(1, int64(p.X))
	e.sint(2, int64(p.Y))
}

func encodeSprite(e *encoder, s core.Sprite) {
	e.sint(1, int64(s.ID))
	e.uvarint(2, uint64(s.Kind))
	e.double(3, s.X)
	e.double(4, s.Y)
	e.string(5, s.State)
}

func encodeGame(e *encoder, f *core.Frame) {
	e.sint(1, int64(f.Columns))
	e.sint(2, int64(f.Rows))
	e.message(3, func(e *encoder) {
		e.sint(1, int64(f.HUD.Stage))
		e.sint(2, int64(f.HUD.Lives))
		e.sint(3, int64(f.HUD.Score))
		e.sint(4, int64(f.HUD.TimeLeft))
	})
	for _, t := range f.Tiles {
		e.message(4, func(e *encoder) {
			encodePos(e, t.Pos)
			e.uvarint(3, uint64(t.Kind))
			e.bool(4, t.Exploding)
		})
	}
	if f.Door != nil {
		e.message(5, func(e *encoder) { encodePos(e, *f.Door) })
	}
	for _, p := range f.PowerUps {
		e.message(6, func(e *encoder) {
			encodePos(e, p.Pos)
			e.uvarint(3, uint64(p.Type))
		})
	}
	for _, b := range f.Bombs {
		e.message(7, func(e *encoder) {
			encodePos(e, b.Pos)
			e.double(3, b.Remaining)
		})
	}
	for _, b := range f.Blasts {
		e.message(8, func(e *encoder) {
			encodePos(e, b.Pos)
			e.uvarint(3, uint64(b.Shape))
		})
	}
	for _, s := range f.Enemies {
		e.message(9, func(e *encoder) { encodeSprite(e, s) })
	}
	e.message(10, func(e *encoder) { encodeSprite(e, f.Character) })
	for _, m := range f.Markers {
		e.message(11, func(e *encoder) {
			e.sint(1, int64(m.ID))
			encodePosAt(e, 2, m.Pos)
			e.sint(3, int64(m.XP))
		})
	}
}

// encodePosAt 以嵌套消息写出坐标
func encodePosAt(e *encoder, num protowire.Number, p core.GridPos) {
	e.message(num, func(e *encoder) { encodePos(e, p) })
}

// ParseFrame 从 Packet 中解析帧消息
func ParseFrame(p Packet) (FrameMessage, error) {
	var msg FrameMessage
	if err := expect(p, MessageFrame); err != nil {
		return msg, err
	}
	err := walk(p.Payload, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			msg.ID = f.uint32()
		case 2:
			msg.Frame.Phase = phase.Phase(f.u)
		case 3:
			msg.Frame.Message = f.str()
		case 4:
			mv, err := decodeMenu(f.b)
			if err != nil {
				return err
			}
			msg.Frame.Menu = mv
		case 5:
			gf, err := decodeGame(f.b)
			if err != nil {
				return err
			}
			msg.Frame.Game = gf
		case 6:
			for _, v := range f.varints() {
				msg.Effects = append(msg.Effects, audio.Effect(v))
			}
		case 7:
			msg.Music = audio.Cue(f.u)
		}
		return nil
	})
	return msg, err
}

func decodeMenu(b []byte) (*phase.MenuView, error) {
	mv := &phase.MenuView{}
	err := walk(b, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			mv.Title = f.str()
		case 2:
			mv.Items = append(mv.Items, f.str())
		case 3:
			mv.Selected = int(f.u)
		}
		return nil
	})
	return mv, err
}

func decodePos(b []byte) (core.GridPos, error) {
	var p core.GridPos
	err := walk(b, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			p.X = int(f.int())
		case 2:
			p.Y = int(f.int())
		}
		return nil
	})
	return p, err
}

func decodeSprite(b []byte) (core.Sprite, error) {
	var s core.Sprite
	err := walk(b, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			s.ID = int(f.int())
		case 2:
			s.Kind = core.Kind(f.u)
		case 3:
			s.X = f.double()
		case 4:
			s.Y = f.double()
		case 5:
			s.State = f.str()
		}
		return nil
	})
	return s, err
}

// decodeTagged 解析“坐标 + 字段 3”形式的小消息
func decodeTagged(b []byte, third func(f field)) (core.GridPos, error) {
	var p core.GridPos
	err := walk(b, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			p.X = int(f.int())
		case 2:
			p.Y = int(f.int())
		case 3:
			third(f)
		}
		return nil
	})
	return p, err
}

func decodeGame(b []byte) (*core.Frame, error) {
	gf := &core.Frame{}
	err := walk(b, func(num protowire.Number, f field) error {
		switch num {
		case 1:
			gf.Columns = int(f.int())
		case 2:
			gf.Rows = int(f.int())
		case 3:
			return walk(f.b, func(num protowire.Number, f field) error {
				switch num {
				case 1:
					gf.HUD.Stage = int(f.int())
				case 2:
					gf.HUD.Lives = int(f.int())
				case 3:
					gf.HUD.Score = int(f.int())
				case 4:
					gf.HUD.TimeLeft = int(f.int())
				}
				return nil
			})
		case 4:
			var t core.TileSprite
			err := walk(f.b, func(num protowire.Number, f field) error {
				switch num {
				case 1:
					t.Pos.X = int(f.int())
				case 2:
					t.Pos.Y = int(f.int())
				case 3:
					t.Kind = core.TileKind(f.u)
				case 4:
					t.Exploding = f.bool()
				}
				return nil
			})
			gf.Tiles = append(gf.Tiles, t)
			return err
		case 5:
			p, err := decodePos(f.b)
			gf.Door = &p
			return err
		case 6:
			var item core.ItemSprite
			pos, err := decodeTagged(f.b, func(f field) { item.Type = core.PowerUpType(f.u) })
			item.Pos = pos
			gf.PowerUps = append(gf.PowerUps, item)
			return err
		case 7:
			var bomb core.BombSprite
			pos, err := decodeTagged(f.b, func(f field) { bomb.Remaining = f.double() })
			bomb.Pos = pos
			gf.Bombs = append(gf.Bombs, bomb)
			return err
		case 8:
			var blast core.BlastSprite
			pos, err := decodeTagged(f.b, func(f field) { blast.Shape = core.Shape(f.u) })
			blast.Pos = pos
			gf.Blasts = append(gf.Blasts, blast)
			return err
		case 9:
			s, err := decodeSprite(f.b)
			gf.Enemies = append(gf.Enemies, s)
			return err
		case 10:
			s, err := decodeSprite(f.b)
			gf.Character = s
			return err
		case 11:
			var m core.XPMarker
			err := walk(f.b, func(num protowire.Number, f field) error {
				switch num {
				case 1:
					m.ID = int(f.int())
				case 2:
					p, err := decodePos(f.b)
					m.Pos = p
					return err
				case 3:
					m.XP = int(f.int())
				}
				return nil
			})
			gf.Markers = append(gf.Markers, m)
			return err
		}
		return nil
	})
	return gf, err
}
