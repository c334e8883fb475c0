package preview

const pageStyle = `body { font-family: system-ui, sans-serif; margin: 2rem; }
button { margin: 0 .25rem; }
.loading { color: #6b7280; }
.error { color: #b91c1c; }`

// clientScript keeps #root in sync with pushed renders and forwards clicks
// on elements with an id.
const clientScript = `
(function() {
    'use strict';

    var root = document.getElementById('root');
    var reconnectDelay = 1000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() { reconnectDelay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.html) { root.innerHTML = msg.html; }
            if (msg.type === 'error') { console.error('[vtree]', msg.error); }
        };
        ws.onclose = function() {
            setTimeout(connect, reconnectDelay);
            reconnectDelay = Math.min(reconnectDelay * 2, 30000);
        };
    }

    root.addEventListener('click', function(e) {
        var el = e.target.closest('[id]');
        if (!el || el === root) { return; }
        fetch('/events/click?target=' + encodeURIComponent('#' + el.id), { method: 'POST' });
    });

    connect();
})();
`
