package connection

const (
	StateIdle         = 0
	StateReading      = 1
	StateStopping     = 2
	StateStopped      = 3
	StateClosing      = 4
	StateDisconnected = 5
)

type IConnection interface {
	Close() error
	Read() ([]byte, error)
	OnMessage(func([]byte))
	Write([]byte) error
	Address() string
	OnError(func(error))
	OnClose(func(error))
	State() int
	ReadLoop()
	IsLive() bool
	String() string
}
